package classify

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	mdsolNamespace = "http://www.mdsol.com/ns/odm/metadata"
	mdsolPrefix    = "mdsol"

	iisErrorMessage = "IIS Error"
)

var htmlSignatures = []string{"<html", "<!doctype html"}

type interpreter func(body string) (*Error, bool)

// first match wins; the fallback in Classify always succeeds
var cascade = []interpreter{
	fromResponseDocument,
	fromODMDocument,
	fromHTMLPage,
}

// Classify turns a non-success response into an Error. It never fails:
// a body no interpreter recognises is reported verbatim under a status-code message.
func Classify(statusCode int, body string) *Error {
	for _, interpret := range cascade {
		if e, ok := try(interpret, body); ok {
			e.StatusCode = statusCode
			e.RawDiagnostic = body
			return e
		}
	}
	return &Error{
		StatusCode:    statusCode,
		Message:       fallbackMessage(statusCode),
		RawDiagnostic: body,
		Kind:          KindUnrecognized,
	}
}

func try(interpret interpreter, body string) (e *Error, ok bool) {
	defer func() {
		if recover() != nil {
			e, ok = nil, false
		}
	}()
	return interpret(body)
}

func fallbackMessage(statusCode int) string {
	switch {
	case statusCode == http.StatusServiceUnavailable:
		return fmt.Sprintf("Unexpected Status Code (%d)", statusCode)
	case statusCode >= 500 && statusCode < 600:
		return fmt.Sprintf("Server Error (%d)", statusCode)
	default:
		return fmt.Sprintf("Unexpected Status Code (%d)", statusCode)
	}
}

// <Response ReasonCode="RWS00024" ErrorClientResponseMessage="Subject already exists." .../>
func fromResponseDocument(body string) (*Error, bool) {
	root, ok := rootElement(body)
	if !ok || root.Name.Local != "Response" {
		return nil, false
	}
	message, ok := attribute(root, "", "ErrorClientResponseMessage")
	if !ok || message == "" {
		return nil, false
	}
	reasonCode, _ := attribute(root, "", "ReasonCode")
	origin, _ := attribute(root, "", "ErrorOriginLocation")
	reference, _ := attribute(root, "", "ReferenceNumber")
	return &Error{
		Message:             message,
		Kind:                KindResponseDocument,
		ReasonCode:          reasonCode,
		ErrorOriginLocation: origin,
		ReferenceNumber:     reference,
	}, true
}

// <ODM xmlns:mdsol="..." mdsol:ErrorDescription="Incorrect login and password combination. [RWS00008]" .../>
func fromODMDocument(body string) (*Error, bool) {
	root, ok := rootElement(body)
	if !ok || root.Name.Local != "ODM" {
		return nil, false
	}
	message, ok := attribute(root, mdsolNamespace, "ErrorDescription")
	if !ok {
		// undeclared prefix is left untranslated by the decoder
		message, ok = attribute(root, mdsolPrefix, "ErrorDescription")
	}
	if !ok || message == "" {
		return nil, false
	}
	return &Error{Message: message, Kind: KindODMDocument}, true
}

func fromHTMLPage(body string) (*Error, bool) {
	lower := strings.ToLower(body)
	for _, signature := range htmlSignatures {
		if strings.Contains(lower, signature) {
			return &Error{Message: iisErrorMessage, Kind: KindIISPage}, true
		}
	}
	return nil, false
}

func rootElement(body string) (xml.StartElement, bool) {
	decoder := xml.NewDecoder(strings.NewReader(strings.TrimSpace(body)))
	// honours encoding="ISO-8859-1", "windows-1252" and the like
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		token, err := decoder.Token()
		if err != nil {
			return xml.StartElement{}, false
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Copy(), true
		}
	}
}

func attribute(element xml.StartElement, space, local string) (string, bool) {
	for _, attr := range element.Attr {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}
