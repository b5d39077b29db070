package mystudio

import (
	"testing"
	"time"
)

var day = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func TestParseClassTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		err  bool
	}{
		{
			name: "morning",
			text: "9:30 AM",
			want: time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "afternoon",
			text: "1:00 PM (6 students)",
			want: time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "noon stays twelve",
			text: "12:00 PM",
			want: time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight wraps to zero",
			text: "12:15 AM",
			want: time.Date(2026, time.March, 2, 0, 15, 0, 0, time.UTC),
		},
		{
			name: "missing period",
			text: "9:30",
			err:  true,
		},
		{
			name: "not a time",
			text: "Select PM",
			err:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassTime(tt.text, day)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClassTime(%q): %v", tt.text, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseClassTime(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseClassList(t *testing.T) {
	html := `<div class="sheduled_child_list"><div><ul>
		<li>Today's Classes</li>
		<li>9:00 AM (4)</li>
		<li>1:00 PM (6)</li>
	</ul></div></div>`

	times, err := parseClassList(html, day)
	if err != nil {
		t.Fatalf("parseClassList: %v", err)
	}

	if len(times) != 2 {
		t.Fatalf("expected 2 class times, got %d", len(times))
	}
	if times[0].Hour() != 9 || times[1].Hour() != 13 {
		t.Errorf("unexpected class times: %v", times)
	}
}

func TestParseClassListEmpty(t *testing.T) {
	html := `<div class="sheduled_child_list"><div><ul><li>Today's Classes</li></ul></div></div>`

	times, err := parseClassList(html, day)
	if err != nil {
		t.Fatalf("parseClassList: %v", err)
	}
	if len(times) != 0 {
		t.Errorf("expected no class times, got %v", times)
	}
}

func TestParseRosterNames(t *testing.T) {
	html := `<tbody>
		<tr><td>1</td><td>x</td><td>y</td><td><span>Ava L</span></td></tr>
		<tr><td>2</td><td>x</td><td>y</td><td><span> Ben K </span></td></tr>
		<tr><td colspan="4">No data available in table</td></tr>
	</tbody>`

	names := parseRosterNames(html)
	if len(names) != 2 || names[0] != "Ava L" || names[1] != "Ben K" {
		t.Errorf("unexpected roster names: %v", names)
	}
}
