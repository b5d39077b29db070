package mystudio

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// parseClassList extracts the class start times from the dropdown markup.
// The first list item is the dropdown header and is skipped.
func parseClassList(html string, day time.Time) ([]time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing class list: %w", err)
	}

	var times []time.Time
	var parseErr error
	doc.Find("div > ul > li").Each(func(i int, sel *goquery.Selection) {
		if i == 0 || parseErr != nil {
			return
		}
		t, err := parseClassTime(strings.TrimSpace(sel.Text()), day)
		if err != nil {
			parseErr = err
			return
		}
		times = append(times, t)
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return times, nil
}

// parseRosterNames extracts student names from the roster table body. The
// name lives in a span in the fourth column of each row. The fragment is
// wrapped in a table element so the HTML parser keeps the rows.
func parseRosterNames(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + html + "</table>"))
	if err != nil {
		return nil
	}

	var names []string
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find("td:nth-child(4) > span").First().Text())
		if name != "" {
			names = append(names, name)
		}
	})
	return names
}
