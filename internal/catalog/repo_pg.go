package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Array-ish columns (research areas,
// ranking scores) are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// Snapshot loads universities, programs, and faculty in stable insertion order.
func (r *PGRepo) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Universities, err = r.listUniversities(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Programs, err = r.listPrograms(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Faculty, err = r.listFaculty(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// GetUniversity returns one university by ID.
func (r *PGRepo) GetUniversity(ctx context.Context, universityID string) (University, error) {
	const query = `
SELECT id, name, country, city, type, ranking_scores, admission_rate, tuition_annual
FROM universities
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, universityID)
	u, err := scanUniversity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return University{}, ErrNotFound
		}
		return University{}, err
	}
	return u, nil
}

func (r *PGRepo) listUniversities(ctx context.Context) ([]University, error) {
	const query = `
SELECT id, name, country, city, type, ranking_scores, admission_rate, tuition_annual
FROM universities
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PGRepo) listPrograms(ctx context.Context) ([]Program, error) {
	const query = `
SELECT id, university_id, name, degree_type, field_of_study, research_areas,
       min_gpa, tuition_annual, admission_rate
FROM programs
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Program
	for rows.Next() {
		var p Program
		var degreeType, fieldOfStudy, researchAreas sql.NullString
		var minGPA, tuition, admissionRate sql.NullFloat64
		if err := rows.Scan(
			&p.ID,
			&p.UniversityID,
			&p.Name,
			&degreeType,
			&fieldOfStudy,
			&researchAreas,
			&minGPA,
			&tuition,
			&admissionRate,
		); err != nil {
			return nil, err
		}
		if degreeType.Valid {
			p.DegreeType = degreeType.String
		}
		if fieldOfStudy.Valid {
			p.FieldOfStudy = fieldOfStudy.String
		}
		if researchAreas.Valid {
			_ = json.Unmarshal([]byte(researchAreas.String), &p.ResearchAreas)
		}
		if minGPA.Valid {
			p.MinGPA = &minGPA.Float64
		}
		if tuition.Valid {
			p.TuitionAnnual = &tuition.Float64
		}
		if admissionRate.Valid {
			p.AdmissionRate = &admissionRate.Float64
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) listFaculty(ctx context.Context) ([]Faculty, error) {
	const query = `
SELECT id, university_id, program_id, name, research_areas, accepting_students
FROM faculty
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Faculty
	for rows.Next() {
		var f Faculty
		var programID, researchAreas sql.NullString
		if err := rows.Scan(
			&f.ID,
			&f.UniversityID,
			&programID,
			&f.Name,
			&researchAreas,
			&f.AcceptingStudents,
		); err != nil {
			return nil, err
		}
		if programID.Valid {
			f.ProgramID = programID.String
		}
		if researchAreas.Valid {
			_ = json.Unmarshal([]byte(researchAreas.String), &f.ResearchAreas)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUniversity(row rowScanner) (University, error) {
	var u University
	var country, city, uType, rankingScores sql.NullString
	var admissionRate, tuition sql.NullFloat64
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&country,
		&city,
		&uType,
		&rankingScores,
		&admissionRate,
		&tuition,
	); err != nil {
		return University{}, err
	}
	if country.Valid {
		u.Country = country.String
	}
	if city.Valid {
		u.City = city.String
	}
	if uType.Valid {
		u.Type = uType.String
	}
	if rankingScores.Valid {
		_ = json.Unmarshal([]byte(rankingScores.String), &u.RankingScores)
	}
	if admissionRate.Valid {
		u.AdmissionRate = &admissionRate.Float64
	}
	if tuition.Valid {
		u.TuitionAnnual = &tuition.Float64
	}
	return u, nil
}
