package documents

import (
	"time"

	"gradmatch-backend/internal/validation"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID  string    `json:"documentId"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes"`
	ParseMethod string    `json:"parseMethod"`
	PageCount   int       `json:"pageCount,omitempty"`
	WordCount   int       `json:"wordCount"`
	UploadedAt  time.Time `json:"uploadedAt"`

	Validation validationResponse `json:"validation"`
}

type validationResponse struct {
	IsValid    bool     `json:"isValid"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.ID,
		FileName:    doc.FileName,
		MimeType:    doc.MimeType,
		SizeBytes:   doc.SizeBytes,
		ParseMethod: doc.ParseMethod,
		PageCount:   doc.PageCount,
		WordCount:   doc.WordCount,
		UploadedAt:  doc.CreatedAt,
		Validation: validationResponse{
			IsValid:    doc.IsValid,
			Confidence: doc.ValidationConfidence,
			Reasons:    doc.ValidationReasons,
		},
	}
}

func toValidationResponse(res validation.Result) validationResponse {
	return validationResponse{
		IsValid:    res.IsValid,
		Confidence: res.Confidence,
		Reasons:    res.Reasons,
	}
}
