package requests

import (
	"net/http"
	"strconv"
)

// Subject listing options.
const (
	IncludeInactive           = "inactive"
	IncludeDeleted            = "deleted"
	IncludeInactiveAndDeleted = "inactiveAndDeleted"

	SubjectKeyName = "SubjectName"
	SubjectKeyUUID = "SubjectUUID"
)

var studySubjectsQuery = whitelist{"status", "include", "subjectKeyType", "links"}

// Version returns the service version, e.g. 1.8.0.
func Version() *Request {
	return get("Version", false, "version")
}

func BuildVersion() *Request {
	return get("BuildVersion", false, "version", "build")
}

func CodeName() *Request {
	return get("CodeName", false, "version", "codename")
}

func Diagnostics() *Request {
	return get("Diagnostics", false, "diagnostics")
}

// CacheFlush asks the service to drop its cached metadata.
func CacheFlush() *Request {
	r := get("CacheFlush", true, "webservice.aspx")
	r.action = "CacheFlush"
	return r
}

// ClinicalStudies lists the studies visible to the authenticated user.
func ClinicalStudies() *Request {
	return get("ClinicalStudies", true, "studies")
}

func MetadataStudies() *Request {
	return get("MetadataStudies", true, "metadata", "studies")
}

type projectParams struct {
	ProjectName string `param:"project_name" validate:"required"`
}

func StudyDrafts(projectName string) (*Request, error) {
	if err := check("StudyDrafts", projectParams{ProjectName: projectName}); err != nil {
		return nil, err
	}
	return get("StudyDrafts", true, "metadata", "studies", projectName, "drafts"), nil
}

func StudyVersions(projectName string) (*Request, error) {
	if err := check("StudyVersions", projectParams{ProjectName: projectName}); err != nil {
		return nil, err
	}
	return get("StudyVersions", true, "metadata", "studies", projectName, "versions"), nil
}

type studyVersionParams struct {
	ProjectName string `param:"project_name" validate:"required"`
	VersionOID  int    `param:"version_oid" validate:"gt=0"`
}

// StudyVersion returns the metadata of one CRF version as ODM.
func StudyVersion(projectName string, versionOID int) (*Request, error) {
	if err := check("StudyVersion", studyVersionParams{ProjectName: projectName, VersionOID: versionOID}); err != nil {
		return nil, err
	}
	return get("StudyVersion", true, "metadata", "studies", projectName, "versions", strconv.Itoa(versionOID)), nil
}

// StudySubjectsParams selects the subjects of one study environment.
type StudySubjectsParams struct {
	ProjectName     string `param:"project_name" validate:"required"`
	EnvironmentName string `param:"environment_name" validate:"required"`
	// include subject status
	Status bool
	// include deep links to the EDC
	Links          bool
	Include        string `param:"include" validate:"omitempty,rws_include"`
	SubjectKeyType string `param:"subject_key_type" validate:"omitempty,rws_subject_key"`
}

func StudySubjects(p StudySubjectsParams) (*Request, error) {
	if err := check("StudySubjects", p); err != nil {
		return nil, err
	}
	values := map[string]string{
		"include":        p.Include,
		"subjectKeyType": p.SubjectKeyType,
	}
	if p.Status {
		values["status"] = "all"
	}
	if p.Links {
		values["links"] = "all"
	}
	query, err := studySubjectsQuery.pick(values)
	if err != nil {
		return nil, err
	}
	r := get("StudySubjects", true, "studies", studyEnvironment(p.ProjectName, p.EnvironmentName), "subjects")
	r.query = query
	return r, nil
}

type postDataParams struct {
	ODM string `param:"odm" validate:"required"`
}

// PostData submits an ODM clinical data document.
func PostData(odm string) (*Request, error) {
	if err := check("PostData", postDataParams{ODM: odm}); err != nil {
		return nil, err
	}
	return &Request{
		name:        "PostData",
		method:      http.MethodPost,
		auth:        true,
		segments:    []string{"webservice.aspx"},
		action:      "PostODMClinicalData",
		body:        []byte(odm),
		contentType: "text/xml",
	}, nil
}
