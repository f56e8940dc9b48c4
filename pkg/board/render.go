package board

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mbtanext/mbtanext/pkg/departures"
)

const columnWidth = 32

// RenderGroup writes one titled grid of stops - stop names across the top
// (wrapped to the column width), then up to MaxDepartures rows of departure
// times below each.
func RenderGroup(w io.Writer, title string, results []departures.StopResult, now time.Time) {
	fmt.Fprintln(w, title)

	var columns [][]string
	for _, result := range results {
		columns = append(columns, formatStopTimes(result, now))
	}

	wrappedNames := make([][]string, len(results))
	maxNameLines := 1
	for index, result := range results {
		wrappedNames[index] = wrapName(result.Stop.Label, columnWidth)
		if len(wrappedNames[index]) > maxNameLines {
			maxNameLines = len(wrappedNames[index])
		}
	}

	maxTimeLines := 0
	for _, column := range columns {
		if len(column) > maxTimeLines {
			maxTimeLines = len(column)
		}
	}

	for lineIndex := 0; lineIndex < maxNameLines; lineIndex++ {
		for _, nameLines := range wrappedNames {
			lineText := ""
			if lineIndex < len(nameLines) {
				lineText = nameLines[lineIndex]
			}

			fmt.Fprintf(w, "%s  ", padToWidth(lineText, columnWidth))
		}
		fmt.Fprintln(w)
	}

	for lineIndex := 0; lineIndex < maxTimeLines; lineIndex++ {
		for _, column := range columns {
			lineText := ""
			if lineIndex < len(column) {
				lineText = column[lineIndex]
			}

			fmt.Fprintf(w, "%s  ", padToWidth(lineText, columnWidth))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}

func formatStopTimes(result departures.StopResult, now time.Time) []string {
	if result.Err != nil {
		return []string{"unavailable"}
	}
	if len(result.Departures) == 0 {
		return []string{"No upcoming trips"}
	}

	firstLiveRank := -1
	for _, departure := range result.Departures {
		if departure.Source == departures.SourceLive {
			firstLiveRank = departure.Rank
			break
		}
	}

	var lines []string
	for _, departure := range result.Departures {
		if departure.Source == departures.SourceLive {
			// Seconds matter when the bus is due - but only for the nearest
			// live departure
			includeSeconds := departure.Rank == firstLiveRank
			line := fmt.Sprintf("🟢 %s", formatDepartureTime(departure.Time, now, includeSeconds))

			if departure.StopsAway == 1 {
				line = fmt.Sprintf("%s (1 stop)", line)
			} else if departure.StopsAway > 1 {
				line = fmt.Sprintf("%s (%d stops)", line, departure.StopsAway)
			}

			lines = append(lines, line)
		} else {
			lines = append(lines, fmt.Sprintf("📅 %s", formatDepartureTime(departure.Time, now, false)))
		}
	}

	return lines
}

func formatDepartureTime(departureTime time.Time, now time.Time, includeSeconds bool) string {
	localTime := departureTime.In(now.Location())

	timeText := localTime.Format("15:04")
	if includeSeconds {
		timeText = localTime.Format("15:04:05")
	}

	minutes := int(departureTime.Sub(now).Minutes())
	if minutes == 0 {
		return timeText
	} else if minutes < 0 {
		return fmt.Sprintf("%s (%dm ago)", timeText, -minutes)
	}

	return fmt.Sprintf("%s (in %dm)", timeText, minutes)
}

// displayWidth counts terminal cells rather than runes - the departure
// markers render two cells wide
func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r == '🟢' || r == '📅' {
			width += 2
		} else {
			width++
		}
	}

	return width
}

func padToWidth(s string, targetWidth int) string {
	currentWidth := displayWidth(s)
	if currentWidth >= targetWidth {
		return s
	}

	return s + strings.Repeat(" ", targetWidth-currentWidth)
}

func wrapName(name string, width int) []string {
	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(name) {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+len(word)+1 <= width {
			currentLine = currentLine + " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
