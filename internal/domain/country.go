package domain

// Country rows are created on demand during ingestion. Unique by Code.
type Country struct {
	ID   string
	Code string
	Name string
}

const (
	// CountryCodeNA is the placeholder row for records whose source
	// omitted the country entirely.
	CountryCodeNA = "NA"
	CountryNameNA = "Not Available"
)
