package metrix

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

// seriesFixture mimics the competition selector markup on the series
// info page. It mixes valid round anchors with ones the parser must
// skip: no bold title, an unparseable date, an external href, and an
// anchor inside an unrelated nav.
const seriesFixture = `<!DOCTYPE html>
<html>
<head><title>TFK Seriespill 2025</title></head>
<body>
<nav class="competition-selector-large">
  <ul>
    <li><a href="/3300001"><b>Runde 14</b> 08/22/25 18:00</a></li>
    <li><a href="/3300002"><b>Runde 15</b> 08/29/25 18:00</a></li>
    <li><a href="/3300003">Runde uten tittel 09/05/25 18:00</a></li>
    <li><a href="/3300004"><b>Finale</b> TBA</a></li>
    <li><a href="https://example.com/other"><b>Ekstern</b> 09/12/25 18:00</a></li>
  </ul>
</nav>
<nav class="site-menu">
  <ul>
    <li><a href="/3300099"><b>Meny</b> 10/01/25 18:00</a></li>
  </ul>
</nav>
</body>
</html>`

func TestParseSeries(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://discgolfmetrix.com/3272824&view=info")
	if err != nil {
		t.Fatal(err)
	}
	oslo, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		t.Fatal(err)
	}

	rounds, err := ParseSeries(strings.NewReader(seriesFixture), base, oslo)
	if err != nil {
		t.Fatalf("ParseSeries() error = %v", err)
	}

	if len(rounds) != 2 {
		t.Fatalf("ParseSeries() returned %d rounds, want 2", len(rounds))
	}

	t.Run("first round fields", func(t *testing.T) {
		t.Parallel()

		got := rounds[0]
		if got.Title != "Runde 14" {
			t.Errorf("Title = %q, want %q", got.Title, "Runde 14")
		}
		if got.URL != "https://discgolfmetrix.com/3300001" {
			t.Errorf("URL = %q, want %q", got.URL, "https://discgolfmetrix.com/3300001")
		}
		want := time.Date(2025, 8, 22, 18, 0, 0, 0, oslo)
		if !got.StartsAt.Equal(want) {
			t.Errorf("StartsAt = %v, want %v", got.StartsAt, want)
		}
	})

	t.Run("second round fields", func(t *testing.T) {
		t.Parallel()

		got := rounds[1]
		if got.Title != "Runde 15" {
			t.Errorf("Title = %q, want %q", got.Title, "Runde 15")
		}
		want := time.Date(2025, 8, 29, 18, 0, 0, 0, oslo)
		if !got.StartsAt.Equal(want) {
			t.Errorf("StartsAt = %v, want %v", got.StartsAt, want)
		}
	})
}

func TestParseSeries_emptyPage(t *testing.T) {
	t.Parallel()

	const page = `<html><body><p>Ingen konkurranser</p></body></html>`

	rounds, err := ParseSeries(strings.NewReader(page), nil, time.UTC)
	if err != nil {
		t.Fatalf("ParseSeries() error = %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("ParseSeries() returned %d rounds, want 0", len(rounds))
	}
}

func TestParseSeries_nilBaseKeepsRelativeURL(t *testing.T) {
	t.Parallel()

	const page = `<nav class="competition-selector-large"><ul>
<li><a href="/3300001"><b>Runde 14</b> 08/22/25 18:00</a></li>
</ul></nav>`

	rounds, err := ParseSeries(strings.NewReader(page), nil, time.UTC)
	if err != nil {
		t.Fatalf("ParseSeries() error = %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("ParseSeries() returned %d rounds, want 1", len(rounds))
	}
	if rounds[0].URL != "/3300001" {
		t.Errorf("URL = %q, want %q", rounds[0].URL, "/3300001")
	}
}

func TestParseSeries_nestedMarkupInsideAnchor(t *testing.T) {
	t.Parallel()

	// The live page wraps the date in a span next to the bold title.
	const page = `<nav class="competition-selector-large"><ul>
<li><a href="/3300001"><b>Runde 14</b><span class="date"> 08/22/25 18:00</span></a></li>
</ul></nav>`

	base, err := url.Parse("https://discgolfmetrix.com/3272824&view=info")
	if err != nil {
		t.Fatal(err)
	}

	rounds, err := ParseSeries(strings.NewReader(page), base, time.UTC)
	if err != nil {
		t.Fatalf("ParseSeries() error = %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("ParseSeries() returned %d rounds, want 1", len(rounds))
	}

	want := time.Date(2025, 8, 22, 18, 0, 0, 0, time.UTC)
	if !rounds[0].StartsAt.Equal(want) {
		t.Errorf("StartsAt = %v, want %v", rounds[0].StartsAt, want)
	}
}

func TestParseSeries_invalidHTMLStillParses(t *testing.T) {
	t.Parallel()

	// html.Parse repairs broken markup rather than failing, so a
	// truncated document yields zero rounds, not an error.
	const page = `<nav class="competition-selector-large"><ul><li><a href="/33`

	rounds, err := ParseSeries(strings.NewReader(page), nil, time.UTC)
	if err != nil {
		t.Fatalf("ParseSeries() error = %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("ParseSeries() returned %d rounds, want 0", len(rounds))
	}
}
