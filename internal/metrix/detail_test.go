package metrix

import (
	"strings"
	"testing"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// detailFixture mimics an event page with a title heading, a course
// anchor carrying a layout arrow, and an info tab with two paragraphs.
const detailFixture = `<!DOCTYPE html>
<html>
<head><title>Runde 14</title></head>
<body>
<h1> Runde 14, Lade </h1>
<div class="event-header">
  <a href="/course/12345"><span>Lade Diskgolfpark</span> <span>&rarr; Hovedbane 18 hull</span></a>
</div>
<div class="info-tab-content">
  <p>Oppmøte senest 17:45.</p>
  <p>Premie til beste score.</p>
</div>
</body>
</html>`

func testRound() model.Round {
	return model.Round{
		Title:    "Runde 14",
		StartsAt: time.Date(2025, 8, 22, 18, 0, 0, 0, time.UTC),
		URL:      "https://discgolfmetrix.com/3300001",
	}
}

func TestParseDetail(t *testing.T) {
	t.Parallel()

	detail, err := ParseDetail(strings.NewReader(detailFixture), testRound())
	if err != nil {
		t.Fatalf("ParseDetail() error = %v", err)
	}

	if detail.Title != "Runde 14, Lade" {
		t.Errorf("Title = %q, want %q", detail.Title, "Runde 14, Lade")
	}
	if detail.CourseID != 12345 {
		t.Errorf("CourseID = %d, want 12345", detail.CourseID)
	}
	if detail.Course != "Lade Diskgolfpark" {
		t.Errorf("Course = %q, want %q", detail.Course, "Lade Diskgolfpark")
	}
	if detail.Layout != "Hovedbane 18 hull" {
		t.Errorf("Layout = %q, want %q", detail.Layout, "Hovedbane 18 hull")
	}
	if detail.CourseFull != "Lade Diskgolfpark – Hovedbane 18 hull" {
		t.Errorf("CourseFull = %q, want %q", detail.CourseFull, "Lade Diskgolfpark – Hovedbane 18 hull")
	}
	if want := "Oppmøte senest 17:45.\nPremie til beste score."; detail.Description != want {
		t.Errorf("Description = %q, want %q", detail.Description, want)
	}

	round := testRound()
	if !detail.StartsAt.Equal(round.StartsAt) {
		t.Errorf("StartsAt = %v, want %v", detail.StartsAt, round.StartsAt)
	}
	if detail.URL != round.URL {
		t.Errorf("URL = %q, want %q", detail.URL, round.URL)
	}
}

func TestParseDetail_fallbacks(t *testing.T) {
	t.Parallel()

	const page = `<html><body><p>Tom side</p></body></html>`

	detail, err := ParseDetail(strings.NewReader(page), testRound())
	if err != nil {
		t.Fatalf("ParseDetail() error = %v", err)
	}

	if detail.Title != model.UnknownTitle {
		t.Errorf("Title = %q, want %q", detail.Title, model.UnknownTitle)
	}
	if detail.Course != model.UnknownCourse {
		t.Errorf("Course = %q, want %q", detail.Course, model.UnknownCourse)
	}
	if detail.Layout != model.UnknownCourse {
		t.Errorf("Layout = %q, want %q", detail.Layout, model.UnknownCourse)
	}
	if detail.CourseFull != model.UnknownCourse {
		t.Errorf("CourseFull = %q, want %q", detail.CourseFull, model.UnknownCourse)
	}
	if detail.CourseID != 0 {
		t.Errorf("CourseID = %d, want 0", detail.CourseID)
	}
	if detail.Description != "" {
		t.Errorf("Description = %q, want empty", detail.Description)
	}
}

func TestParseDetail_courseWithoutLayout(t *testing.T) {
	t.Parallel()

	const page = `<html><body>
<h1>Runde 14</h1>
<a href="/course/777">Lade Diskgolfpark</a>
</body></html>`

	detail, err := ParseDetail(strings.NewReader(page), testRound())
	if err != nil {
		t.Fatalf("ParseDetail() error = %v", err)
	}

	if detail.CourseID != 777 {
		t.Errorf("CourseID = %d, want 777", detail.CourseID)
	}
	if detail.Course != "Lade Diskgolfpark" {
		t.Errorf("Course = %q, want %q", detail.Course, "Lade Diskgolfpark")
	}
	// No arrow means no separate layout.
	if detail.Layout != model.UnknownCourse {
		t.Errorf("Layout = %q, want %q", detail.Layout, model.UnknownCourse)
	}
	if detail.CourseFull != "Lade Diskgolfpark" {
		t.Errorf("CourseFull = %q, want %q", detail.CourseFull, "Lade Diskgolfpark")
	}
}

func TestParseDetail_asciiArrowRemoved(t *testing.T) {
	t.Parallel()

	// Some pages carry a literal "->" next to the unicode arrow. It is
	// stripped before splitting, which may leave doubled spaces in the
	// course name.
	const page = `<html><body>
<h1>Runde 14</h1>
<a href="/course/12345">Lade Diskgolfpark -> &rarr; Hovedbane</a>
</body></html>`

	detail, err := ParseDetail(strings.NewReader(page), testRound())
	if err != nil {
		t.Fatalf("ParseDetail() error = %v", err)
	}

	if detail.Layout != "Hovedbane" {
		t.Errorf("Layout = %q, want %q", detail.Layout, "Hovedbane")
	}
	if !strings.HasPrefix(detail.Course, "Lade Diskgolfpark") {
		t.Errorf("Course = %q, want prefix %q", detail.Course, "Lade Diskgolfpark")
	}
}

func TestParseDetail_courseIDVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want int
	}{
		{
			name: "plain id",
			href: "/course/12345",
			want: 12345,
		},
		{
			name: "trailing slash yields no id",
			href: "/course/12345/",
			want: 0,
		},
		{
			name: "non numeric suffix yields no id",
			href: "/course/lade",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := `<html><body><h1>R</h1><a href="` + tt.href + `">Bane</a></body></html>`

			detail, err := ParseDetail(strings.NewReader(page), testRound())
			if err != nil {
				t.Fatalf("ParseDetail() error = %v", err)
			}
			if detail.CourseID != tt.want {
				t.Errorf("CourseID = %d, want %d", detail.CourseID, tt.want)
			}
		})
	}
}

func TestParseDetail_emptyHeadingOverridesTitle(t *testing.T) {
	t.Parallel()

	// An empty h1 still wins over the listing title. The page is the
	// authority on its own title, even when it says nothing.
	const page = `<html><body><h1>   </h1></body></html>`

	detail, err := ParseDetail(strings.NewReader(page), testRound())
	if err != nil {
		t.Fatalf("ParseDetail() error = %v", err)
	}
	if detail.Title != "" {
		t.Errorf("Title = %q, want empty", detail.Title)
	}
}

func TestParseDetail_descriptionJoinsBlocks(t *testing.T) {
	t.Parallel()

	const page = `<html><body>
<div class="info-tab-content">
  <p>Linje en.</p>
  <div>
    <span>Linje</span> <span>to.</span>
  </div>
</div>
</body></html>`

	detail, err := ParseDetail(strings.NewReader(page), testRound())
	if err != nil {
		t.Fatalf("ParseDetail() error = %v", err)
	}

	if want := "Linje en.\nLinje\nto."; detail.Description != want {
		t.Errorf("Description = %q, want %q", detail.Description, want)
	}
}
