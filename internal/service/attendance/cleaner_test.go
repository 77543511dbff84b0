package attendance

import (
	"testing"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	rows := []punch.RawPunch{
		{Worker: "'ana'", WorkID: " '17' ", CardNo: `"0099"`, Date: "2024-03-04", Time: "08:02:11"},
		{Worker: "", Date: "2024-03-04", Time: "08:00"},
		{Worker: "NULL", Date: "2024-03-04", Time: "08:00"},
		{Worker: "   ", Date: "2024-03-04", Time: "08:00"},
		{Worker: "luis", Date: "", Time: "08:00"},
		{Worker: "luis", Date: "2024-03-04", Time: "  "},
		{Worker: " luis ", Date: "05/03/2024", Time: "17:00", Direction: " OUT "},
	}

	got := Clean(rows)

	assert.Equal(t, []punch.RawPunch{
		{Worker: "ana", WorkID: "17", CardNo: "0099", Date: "2024-03-04", Time: "08:02:11"},
		{Worker: "luis", Date: "2024-03-05", Time: "17:00", Direction: "OUT"},
	}, got)
}

func TestClean_KeepsCaseSensitiveWorkers(t *testing.T) {
	got := Clean([]punch.RawPunch{
		{Worker: "Ana", Date: "2024-03-04", Time: "08:00"},
		{Worker: "ana", Date: "2024-03-04", Time: "08:00"},
	})
	assert.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Worker)
	assert.Equal(t, "ana", got[1].Worker)
}

func TestClean_EmptyInput(t *testing.T) {
	assert.Empty(t, Clean(nil))
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-04":          "2024-03-04",
		"2024/3/4":            "2024-03-04",
		"04/03/2024":          "2024-03-04",
		"4-3-2024":            "2024-03-04",
		"2024-03-04T00:00:00": "2024-03-04",
		"2024-03-04 07:00":    "2024-03-04",
		"31/02/2024":          "31/02/2024",
		"03/04/24":            "03/04/24",
		"yesterday":           "yesterday",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeDate(input), "NormalizeDate(%q)", input)
	}
}
