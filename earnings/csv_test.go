package earnings

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	day := time.Date(2026, time.April, 10, 14, 0, 0, 0, time.Local)

	records := []Record{
		{
			SaleDate:     day.Unix(),
			StudentName:  "Bob Student",
			StudentEmail: "bob@example.com",
			CourseName:   "Databases",
			Price:        49.99,
			NetEarnings:  Net(49.99),
		},
		{
			SaleDate:    day.Unix(),
			StudentName: "No Email",
			CourseName:  "Intro",
			Price:       100,
			NetEarnings: Net(100),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"date", "student_name", "student_email", "course_name", "price", "net_earnings"}, rows[0])
	assert.Equal(t, []string{"2026-04-10", "Bob Student", "bob@example.com", "Databases", "49.99", "44.99"}, rows[1])
	assert.Equal(t, []string{"2026-04-10", "No Email", "N/A", "Intro", "100.00", "90.00"}, rows[2])
}

func TestWriteCSVEscapesQuotesAndCommas(t *testing.T) {
	records := []Record{
		{
			SaleDate:     time.Now().Unix(),
			StudentName:  `Robert "Bobby" Tables, Jr.`,
			StudentEmail: "bobby@example.com",
			CourseName:   "SQL, the hard way",
			Price:        10,
			NetEarnings:  Net(10),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, `Robert "Bobby" Tables, Jr.`, rows[1][1])
	assert.Equal(t, "SQL, the hard way", rows[1][3])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
