package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"latin", "Asha Rao", "asha-rao"},
		{"cyrillic", "Иван Петров", "ivan-petrov"},
		{"punctuation collapsed", "  Dr. Sarah -- Johnson!! ", "dr-sarah-johnson"},
		{"digits kept", "CV 2024", "cv-2024"},
		{"empty", "", ""},
		{"only symbols", "***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "my-resume", FileStem("My Resume.pdf"))
	assert.Equal(t, "cv", FileStem("/tmp/uploads/CV.docx"))
	assert.Equal(t, "notes", FileStem("notes"))
}
