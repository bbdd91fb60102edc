package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Attendance",
		Columns: []Column{{Key: "subject", Title: "Subject"}, {Key: "percent"}},
		Rows: []map[string]string{
			{"subject": "Math", "percent": "80"},
			{"subject": "Physics, Lab", "percent": "65"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	out, err := CSV{}.Render(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Subject,percent\nMath,80\n\"Physics, Lab\",65\n", string(out))
}

func TestRenderRequiresColumns(t *testing.T) {
	_, err := CSV{}.Render(Table{})
	assert.ErrorIs(t, err, ErrNoColumns)
	_, err = PDF{}.Render(Table{})
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestPDFRender(t *testing.T) {
	highlighted := 0
	r := PDF{Highlight: func(row map[string]string) (int, int, int, bool) {
		if row["percent"] == "65" {
			highlighted++
			return 250, 200, 200, true
		}
		return 0, 0, 0, false
	}}
	out, err := r.Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 1, highlighted)
	assert.Equal(t, "application/pdf", r.ContentType())
}
