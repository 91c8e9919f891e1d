package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/kwartayo/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property in text format.
func printPropertySummary(w io.Writer, p *listing.Property) {
	fmt.Fprintf(w, "Property #%d: %s\n", p.ID, p.Title)
	fmt.Fprintf(w, "  Location: %s\n", p.Location)
	fmt.Fprintf(w, "  Price:    %s/month\n", formatPrice(p.Price))
	fmt.Fprintf(w, "  Rooms:    %d bed, %d bath\n", p.Beds, p.Baths)
	if len(p.Amenities) > 0 {
		fmt.Fprintf(w, "  Amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	if p.Reviews > 0 {
		fmt.Fprintf(w, "  Rating:   %s\n", formatRating(p.Rating, p.Reviews))
	}
	owner := p.Owner.Name
	if p.Verified {
		owner += " (verified)"
	}
	fmt.Fprintf(w, "  Owner:    %s\n", owner)
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

// printPropertyTable prints a list of properties as a formatted table.
// When match is set a MATCH column shows each property's score.
func printPropertyTable(out io.Writer, props []listing.Property, match bool) error {
	if len(props) == 0 {
		fmt.Fprintln(out, "No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "ID\tTITLE\tLOCATION\tPRICE\tBED\tBATH\tRATING"
	sep := "--\t-----\t--------\t-----\t---\t----\t------"
	if match {
		header += "\tMATCH"
		sep += "\t-----"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		rating := "-"
		if p.Reviews > 0 {
			rating = formatRating(p.Rating, p.Reviews)
		}
		row := fmt.Sprintf("%d\t%s\t%s\t%s\t%d\t%d\t%s",
			p.ID, truncate(p.Title, 32), p.Location, formatPrice(p.Price), p.Beds, p.Baths, rating)
		if match {
			row += fmt.Sprintf("\t%d%%", p.MatchScore)
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\n%d properties found\n", len(props))
	return nil
}

// printRoommateTable prints roommate profiles as a formatted table.
func printRoommateTable(out io.Writer, rs []listing.Roommate) error {
	if len(rs) == 0 {
		fmt.Fprintln(out, "No roommates found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tAGE\tGENDER\tLOCATION\tBUDGET\tOCCUPATION"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t---\t------\t--------\t------\t----------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range rs {
		name := r.Name
		if r.Verified {
			name += " ✓"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, name, r.Age, r.Gender, r.Location, formatPrice(r.Budget), truncate(r.Occupation, 24)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\n%d roommates found\n", len(rs))
	return nil
}

// formatPrice formats a peso amount with thousands separators.
func formatPrice(pesos int) string {
	s := strconv.Itoa(pesos)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	if len(s) <= 3 {
		return sign + "₱" + s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return sign + "₱" + strings.Join(parts, ",")
}

// formatRating returns the average rating with its review count.
func formatRating(rating float64, reviews int) string {
	return fmt.Sprintf("★ %.1f (%d)", rating, reviews)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
