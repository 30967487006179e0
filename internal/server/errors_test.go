package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrNotFound{Resource: "resume", ID: "abc"}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "progress", Message: "must be between 0 and 100"}, http.StatusBadRequest},
		{"unsupported format", &ErrUnsupportedFormat{Filename: "resume.docx"}, http.StatusUnsupportedMediaType},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "resume not found: abc", (&ErrNotFound{Resource: "resume", ID: "abc"}).Error())
	assert.Equal(t, "validation error: progress - must be between 0 and 100",
		(&ErrValidation{Field: "progress", Message: "must be between 0 and 100"}).Error())
	assert.Equal(t, "unsupported document format: resume.docx",
		(&ErrUnsupportedFormat{Filename: "resume.docx"}).Error())
}
