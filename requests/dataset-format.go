package requests

import "fmt"

// Dataset formats served by the Biostats Gateway.
const (
	FormatCSV = "csv"
	FormatXML = "xml"
)

// Dataset types of clinical views.
const (
	DatasetTypeRegular = "regular"
	DatasetTypeRaw     = "raw"
)

// FormatSuffix maps a dataset format to its resource-name suffix:
// csv is served as <name>.csv, xml as the bare name.
func FormatSuffix(format string) (string, error) {
	switch format {
	case FormatCSV:
		return ".csv", nil
	case FormatXML:
		return "", nil
	}
	return "", fmt.Errorf("%w: dataset format is expected to be one of csv or xml, %q is not valid", ErrUnsupportedFormat, format)
}
