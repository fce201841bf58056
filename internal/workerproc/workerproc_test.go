package workerproc

import (
	"context"
	"errors"
	"testing"
)

type stubProcessor struct {
	runs []string
	err  error
}

func (s *stubProcessor) Process(ctx context.Context, runID string) error {
	s.runs = append(s.runs, runID)
	return s.err
}

func TestParseMessage(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantID  string
		wantErr any
	}{
		{"valid", `{"matchRunId":"run-1","requestId":"req-1","version":1}`, "run-1", nil},
		{"empty", "   ", "", ErrEmptyBody{}},
		{"garbage", "not json", "", ErrDecode{}},
		{"missing id", `{"requestId":"req-1"}`, "", ErrMissingRunID{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, meta, err := ParseMessage(tc.body)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if msg.MatchRunID != tc.wantID {
					t.Fatalf("matchRunId = %q, want %q", msg.MatchRunID, tc.wantID)
				}
				if meta.BodyLen != len(tc.body) {
					t.Fatalf("bodyLen = %d, want %d", meta.BodyLen, len(tc.body))
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			switch tc.wantErr.(type) {
			case ErrEmptyBody:
				if _, ok := err.(ErrEmptyBody); !ok {
					t.Fatalf("error type = %T", err)
				}
			case ErrDecode:
				if _, ok := err.(ErrDecode); !ok {
					t.Fatalf("error type = %T", err)
				}
			case ErrMissingRunID:
				if _, ok := err.(ErrMissingRunID); !ok {
					t.Fatalf("error type = %T", err)
				}
			}
		})
	}
}

func TestHandleMessageProcesses(t *testing.T) {
	proc := &stubProcessor{}
	body := `{"matchRunId":"run-7","requestId":"req-7","version":1}`

	if err := HandleMessage(context.Background(), proc, body); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(proc.runs) != 1 || proc.runs[0] != "run-7" {
		t.Fatalf("processed runs = %v", proc.runs)
	}
}

func TestHandleMessageWrapsProcessError(t *testing.T) {
	proc := &stubProcessor{err: errors.New("boom")}
	body := `{"matchRunId":"run-8","version":1}`

	err := HandleMessage(context.Background(), proc, body)
	procErr, ok := err.(ErrProcess)
	if !ok {
		t.Fatalf("error type = %T, want ErrProcess", err)
	}
	if procErr.MatchRunID != "run-8" {
		t.Fatalf("matchRunId = %q", procErr.MatchRunID)
	}
}

func TestHandleMessageReusesParsedContext(t *testing.T) {
	proc := &stubProcessor{}
	msg, _, err := ParseMessage(`{"matchRunId":"run-9","version":1}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ctx := WithParsedMessage(context.Background(), msg)
	if err := HandleMessage(ctx, proc, "ignored body"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(proc.runs) != 1 || proc.runs[0] != "run-9" {
		t.Fatalf("processed runs = %v", proc.runs)
	}
}

func TestHandleMessageNilProcessor(t *testing.T) {
	if err := HandleMessage(context.Background(), nil, "{}"); err == nil {
		t.Fatal("expected error")
	}
}
