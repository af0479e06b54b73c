package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/tidwall/pretty"
)

// ExportService renders a trip as a shareable text summary, PDF or JSON.
type ExportService struct {
	// BaseURL is the public address of the client app; share links are
	// built on it.
	BaseURL   string
	RequestID string
}

// TripExport is everything a summary is built from.
type TripExport struct {
	TripID        string
	Itinerary     models.ItineraryResult
	Companies     []models.CompanyInfo
	Budget        *models.BudgetBreakdown
	TravelerCount int
}

// ExportFromSaved builds a TripExport from a stored trip.
func ExportFromSaved(t models.SavedTrip) TripExport {
	return TripExport{
		TripID:        t.ID,
		Itinerary:     t.Itinerary,
		Companies:     t.Companies,
		Budget:        t.Budget,
		TravelerCount: t.FormData.TravelerCount,
	}
}

// ShareLink returns the link that replays a saved trip, or "" without an id.
func (s ExportService) ShareLink(tripID string) string {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "?tripId=" + url.QueryEscape(tripID)
}

// Filename returns the download name for a destination, e.g.
// "Pune,_Maharashtra_Itinerary.txt".
func Filename(destination, ext string) string {
	return utils.SafeFilenamePart(destination) + "_Itinerary." + ext
}

func plainNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Summary renders the plain-text trip summary.
func (s ExportService) Summary(t TripExport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AI-IV-PLANNER TRIP: %s\n", t.Itinerary.Destination)

	if link := s.ShareLink(t.TripID); link != "" {
		fmt.Fprintf(&b, "View detailed plan here: %s\n\n", link)
	}

	fmt.Fprintf(&b, "Overview: %s\n\n", t.Itinerary.Overview)

	if len(t.Itinerary.Days) > 0 {
		b.WriteString("--- ITINERARY ---\n")
		for _, day := range t.Itinerary.Days {
			fmt.Fprintf(&b, "Day %d: %s\n", day.Day, day.Title)
			for _, act := range day.Activities {
				fmt.Fprintf(&b, "- [%s] %s: %s (%s)\n", act.Time, act.Location, act.Description, act.Type)
				if act.MapsURL != "" {
					fmt.Fprintf(&b, "  Map: %s\n", act.MapsURL)
				}
			}
			b.WriteString("\n")
		}
	}

	if len(t.Companies) > 0 {
		b.WriteString("--- INDUSTRY VISITS ---\n")
		for _, comp := range t.Companies {
			fmt.Fprintf(&b, "- %s: %s\n", comp.Name, comp.Description)
			if comp.MapsURL != "" {
				fmt.Fprintf(&b, "  Map: %s\n", comp.MapsURL)
			}
		}
		b.WriteString("\n")
	}

	if t.Budget != nil {
		travelers := t.TravelerCount
		if travelers < 1 {
			travelers = 1
		}
		b.WriteString("--- ESTIMATED BUDGET ---\n")
		fmt.Fprintf(&b, "Total per person: %s %s\n", t.Budget.Currency, plainNumber(t.Budget.Total))
		fmt.Fprintf(&b, "Travelers: %d\n", travelers)
		fmt.Fprintf(&b, "Grand Total: %s %s\n", t.Budget.Currency, plainNumber(t.Budget.GroupTotal(travelers)))
	}

	b.WriteString("\nGenerated by AI-IV-Planner")
	return b.String()
}

// PDF renders the trip as an A4 document.
func (s ExportService) PDF(t TripExport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Industrial Trip to "+t.Itinerary.Destination), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr("AI-IV-PLANNER TRIP: "+utils.Fallback(t.Itinerary.Destination, "-")), "", "", false)
	pdf.Ln(3)

	if link := s.ShareLink(t.TripID); link != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("View detailed plan here: "+link), "", "", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(t.Itinerary.Overview), "", "", false)
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, title)
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
	}

	if len(t.Itinerary.Days) > 0 {
		section("Itinerary")
		for _, day := range t.Itinerary.Days {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("Day %d: %s", day.Day, day.Title)), "", "", false)
			pdf.SetFont("Helvetica", "", 10)
			for _, act := range day.Activities {
				line := fmt.Sprintf("[%s] %s: %s (%s)", act.Time, act.Location, act.Description, act.Type)
				pdf.MultiCell(0, 5, tr(line), "", "", false)
			}
			pdf.Ln(2)
		}
	}

	if len(t.Companies) > 0 {
		section("Industry Visits")
		for _, comp := range t.Companies {
			line := fmt.Sprintf("%s: %s", comp.Name, comp.Description)
			if comp.Distance != "" {
				line += " (" + comp.Distance + ")"
			}
			pdf.MultiCell(0, 5, tr(line), "", "", false)
		}
		pdf.Ln(2)
	}

	if t.Budget != nil {
		travelers := t.TravelerCount
		if travelers < 1 {
			travelers = 1
		}
		section("Estimated Budget")
		cur := t.Budget.Currency
		rows := [][2]string{
			{"Travel", utils.FormatMoney(cur, t.Budget.Travel)},
			{"Stay", utils.FormatMoney(cur, t.Budget.Accommodation)},
			{"Food", utils.FormatMoney(cur, t.Budget.Food)},
			{"Activities", utils.FormatMoney(cur, t.Budget.Activities)},
			{"Buffer", utils.FormatMoney(cur, t.Budget.Buffer)},
			{"Total per person", utils.FormatMoney(cur, t.Budget.Total)},
			{"Travelers", strconv.Itoa(travelers)},
			{"Grand Total", utils.FormatMoney(cur, t.Budget.GroupTotal(travelers))},
		}
		for _, r := range rows {
			pdf.CellFormat(60, 6, tr(r[0]), "", 0, "", false, 0, "")
			pdf.CellFormat(0, 6, tr(r[1]), "", 1, "R", false, 0, "")
		}
		if len(t.Budget.Tips) > 0 {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "I", 10)
			for _, tip := range t.Budget.Tips {
				pdf.MultiCell(0, 5, tr("- "+tip), "", "", false)
			}
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 5, "Generated by AI-IV-Planner")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "pdf", fmt.Sprintf("trip_id=%s bytes=%d", t.TripID, buf.Len()))
	return buf.Bytes(), Filename(t.Itinerary.Destination, "pdf"), nil
}

// JSON renders a saved trip as indented JSON.
func (s ExportService) JSON(t models.SavedTrip) ([]byte, string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, "", err
	}
	return pretty.Pretty(raw), Filename(t.Destination, "json"), nil
}
