package requests

import "strings"

// Biostats Gateway: clinical views, their metadata and SDTM datasets.

var (
	cvMetadataQuery = whitelist{"versionitem", "rawsuffix", "codelistsuffix", "decodesuffix"}
	formDataQuery   = whitelist{"start"}
)

// datasetTemplate is one datasets/<dataset><suffix>[?<queryKey>=...] endpoint.
// Endpoints of this shape differ only in these three values.
type datasetTemplate struct {
	operation string
	dataset   string
	queryKey  string
}

var (
	clinicalViewMetadata = datasetTemplate{operation: "MetaData", dataset: "ClinicalViewMetadata"}
	projectMetadata      = datasetTemplate{operation: "ProjectMetaData", dataset: "ClinicalViewMetadata", queryKey: "ProjectName"}
	viewMetadata         = datasetTemplate{operation: "ViewMetaData", dataset: "ClinicalViewMetadata", queryKey: "ViewName"}
	sdtmComments         = datasetTemplate{operation: "CommentData", dataset: "SDTMComments", queryKey: "studyid"}
	sdtmDeviations       = datasetTemplate{operation: "ProtocolDeviations", dataset: "SDTMProtocolDeviations", queryKey: "studyid"}
	sdtmDictionaries     = datasetTemplate{operation: "DataDictionaries", dataset: "SDTMDataDictionaries", queryKey: "studyid"}
)

// request expects a validated format.
func (t datasetTemplate) request(format, selector string) (*Request, error) {
	suffix, err := FormatSuffix(strings.ToLower(format))
	if err != nil {
		return nil, err
	}
	var allowed whitelist
	var values map[string]string
	if t.queryKey != "" {
		allowed = whitelist{t.queryKey}
		values = map[string]string{t.queryKey: selector}
	}
	query, err := allowed.pick(values)
	if err != nil {
		return nil, err
	}
	r := get(t.operation, true, "datasets", t.dataset+suffix)
	r.query = query
	return r, nil
}

type formatParams struct {
	Format string `param:"dataset_format" validate:"rws_format"`
}

type projectFormatParams struct {
	ProjectName string `param:"project_name" validate:"required"`
	Format      string `param:"dataset_format" validate:"rws_format"`
}

type viewFormatParams struct {
	ViewName string `param:"view_name" validate:"required"`
	Format   string `param:"dataset_format" validate:"rws_format"`
}

type studyFormatParams struct {
	ProjectName     string `param:"project_name" validate:"required"`
	EnvironmentName string `param:"environment_name" validate:"required"`
	Format          string `param:"dataset_format" validate:"rws_format"`
}

// Dataset constructors take a required format, csv or xml in any case.
// An empty format is rejected with ErrUnsupportedFormat rather than defaulted.

// MetaData returns the metadata of all clinical views.
func MetaData(format string) (*Request, error) {
	if err := check(clinicalViewMetadata.operation, formatParams{Format: format}); err != nil {
		return nil, err
	}
	return clinicalViewMetadata.request(format, "")
}

// ProjectMetaData returns the clinical view metadata of one project.
func ProjectMetaData(projectName, format string) (*Request, error) {
	if err := check(projectMetadata.operation, projectFormatParams{ProjectName: projectName, Format: format}); err != nil {
		return nil, err
	}
	return projectMetadata.request(format, projectName)
}

// ViewMetaData returns the metadata of a single clinical view.
func ViewMetaData(viewName, format string) (*Request, error) {
	if err := check(viewMetadata.operation, viewFormatParams{ViewName: viewName, Format: format}); err != nil {
		return nil, err
	}
	return viewMetadata.request(format, viewName)
}

func CommentData(projectName, environmentName, format string) (*Request, error) {
	return studyDataset(sdtmComments, projectName, environmentName, format)
}

func ProtocolDeviations(projectName, environmentName, format string) (*Request, error) {
	return studyDataset(sdtmDeviations, projectName, environmentName, format)
}

func DataDictionaries(projectName, environmentName, format string) (*Request, error) {
	return studyDataset(sdtmDictionaries, projectName, environmentName, format)
}

func studyDataset(t datasetTemplate, projectName, environmentName, format string) (*Request, error) {
	p := studyFormatParams{ProjectName: projectName, EnvironmentName: environmentName, Format: format}
	if err := check(t.operation, p); err != nil {
		return nil, err
	}
	return t.request(format, studyEnvironment(projectName, environmentName))
}

// CVMetaDataParams selects clinical view metadata of one study environment as ODM.
type CVMetaDataParams struct {
	ProjectName     string `param:"project_name" validate:"required"`
	EnvironmentName string `param:"environment_name" validate:"required"`
	VersionItem     string
	RawSuffix       string
	CodelistSuffix  string
	DecodeSuffix    string
}

func CVMetaData(p CVMetaDataParams) (*Request, error) {
	if err := check("CVMetaData", p); err != nil {
		return nil, err
	}
	query, err := cvMetadataQuery.pick(map[string]string{
		"versionitem":    p.VersionItem,
		"rawsuffix":      p.RawSuffix,
		"codelistsuffix": p.CodelistSuffix,
		"decodesuffix":   p.DecodeSuffix,
	})
	if err != nil {
		return nil, err
	}
	r := get("CVMetaData", true, "studies", studyEnvironment(p.ProjectName, p.EnvironmentName), "datasets", "metadata", "regular")
	r.query = query
	return r, nil
}

// FormDataParams selects the clinical view of one form.
type FormDataParams struct {
	ProjectName     string `param:"project_name" validate:"required"`
	EnvironmentName string `param:"environment_name" validate:"required"`
	DatasetType     string `param:"dataset_type" validate:"rws_dataset_type"`
	FormOID         string `param:"form_oid" validate:"required"`
	// only records changed since this ISO 8601 timestamp
	Start string
	// required: csv or xml, case-insensitive; there is no default
	Format string `param:"dataset_format" validate:"rws_format"`
}

func FormData(p FormDataParams) (*Request, error) {
	if err := check("FormData", p); err != nil {
		return nil, err
	}
	suffix, err := FormatSuffix(strings.ToLower(p.Format))
	if err != nil {
		return nil, err
	}
	query, err := formDataQuery.pick(map[string]string{"start": p.Start})
	if err != nil {
		return nil, err
	}
	r := get("FormData", true, "studies", studyEnvironment(p.ProjectName, p.EnvironmentName), "datasets",
		strings.ToLower(p.DatasetType), p.FormOID+suffix)
	r.query = query
	return r, nil
}
