package classify

import (
	"net/http"
	"testing"

	"gotest.tools/v3/assert"
)

const responseDocument = `<Response
        ReferenceNumber="5b1fa9a3-0cf3-46b6-8304-37c2e3b7d04f5"
        InboundODMFileOID="1"
        IsTransactionSuccessful = "0"
        ReasonCode="RWS00024"
        ErrorOriginLocation="/ODM/ClinicalData[1]/SubjectData[1]"
        SuccessStatistics="Rave objects touched: Subjects=0; Folders=0; Forms=0; Fields=0; LogLines=0"
        ErrorClientResponseMessage="Subject already exists.">
        </Response>
`

const odmDocument = `
        <?xml version="1.0" encoding="utf-8"?>
        <ODM xmlns:mdsol="http://www.mdsol.com/ns/odm/metadata"
         FileType="Snapshot"
         CreationDateTime="2013-04-08T10:28:49.578-00:00"
         FileOID="4d13722a-ceb6-4419-a917-b6ad5d0bc30e"
         ODMVersion="1.3"
         mdsol:ErrorDescription="Incorrect login and password combination. [RWS00008]"
         xmlns="http://www.cdisc.org/ns/odm/v1.3" />

`

const iisPage = `
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8" />
            <title>OOPS! Error Occurred. Sorry about this.</title>
        </head>
        <body>
            <h2>OOPS! Error Occurred</h2>
        </body>
        </html>
`

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		message    string
		kind       Kind
	}{
		{"503 plain text", http.StatusServiceUnavailable, "HTTP 503 Service Temporarily Unavailable", "Unexpected Status Code (503)", KindUnrecognized},
		{"500 plain text", http.StatusInternalServerError, "HTTP 500.13 Web server is too busy.", "Server Error (500)", KindUnrecognized},
		{"502 plain text", http.StatusBadGateway, "Bad Gateway", "Server Error (502)", KindUnrecognized},
		{"404 plain text", http.StatusNotFound, "Not Found", "Unexpected Status Code (404)", KindUnrecognized},
		{"401 empty body", http.StatusUnauthorized, "", "Unexpected Status Code (401)", KindUnrecognized},
		{"400 odm document", http.StatusBadRequest, odmDocument, "Incorrect login and password combination. [RWS00008]", KindODMDocument},
		{"401 odm document", http.StatusUnauthorized, odmDocument, "Incorrect login and password combination. [RWS00008]", KindODMDocument},
		{"400 response document", http.StatusBadRequest, responseDocument, "Subject already exists.", KindResponseDocument},
		{"500 response document", http.StatusInternalServerError, responseDocument, "Subject already exists.", KindResponseDocument},
		{"400 iis page", http.StatusBadRequest, iisPage, "IIS Error", KindIISPage},
		{"500 iis page", http.StatusInternalServerError, iisPage, "IIS Error", KindIISPage},
		{"upper case html tag", http.StatusNotFound, "<HTML><BODY>404</BODY></HTML>", "IIS Error", KindIISPage},
		{"unterminated response element", http.StatusBadRequest, `<Response ErrorClientResponseMessage="x`, "Unexpected Status Code (400)", KindUnrecognized},
		{"response without message", http.StatusBadRequest, `<Response ReasonCode="RWS00092"/>`, "Unexpected Status Code (400)", KindUnrecognized},
		{"odm without error description", http.StatusBadRequest, `<ODM FileOID="1"/>`, "Unexpected Status Code (400)", KindUnrecognized},
		{"odm with undeclared prefix", http.StatusBadRequest, `<ODM mdsol:ErrorDescription="Study not found"/>`, "Study not found", KindODMDocument},
		{"odm with foreign namespace", http.StatusBadRequest, `<ODM xmlns:x="urn:other" x:ErrorDescription="nope"/>`, "Unexpected Status Code (400)", KindUnrecognized},
		{"latin-1 response document", http.StatusBadRequest,
			"<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Response ReasonCode=\"RWS00024\" ErrorClientResponseMessage=\"Sujet d\xe9j\xe0 existant.\"/>",
			"Sujet déjà existant.", KindResponseDocument},
		{"latin-1 odm document", http.StatusBadRequest,
			`<?xml version="1.0" encoding="ISO-8859-1"?><ODM xmlns:mdsol="http://www.mdsol.com/ns/odm/metadata" mdsol:ErrorDescription="Incorrect login and password combination. [RWS00008]"/>`,
			"Incorrect login and password combination. [RWS00008]", KindODMDocument},
		{"windows-1252 response document", http.StatusBadRequest,
			"<?xml version=\"1.0\" encoding=\"windows-1252\"?><Response ErrorClientResponseMessage=\"Field \x93AGE\x94 is locked.\"/>",
			"Field \u201cAGE\u201d is locked.", KindResponseDocument},
		{"us-ascii response document", http.StatusBadRequest,
			`<?xml version="1.0" encoding="us-ascii"?><Response ErrorClientResponseMessage="Subject already exists."/>`,
			"Subject already exists.", KindResponseDocument},
		{"unsupported encoding", http.StatusBadRequest, `<?xml version="1.0" encoding="utf-16"?><ODM mdsol:ErrorDescription="x"/>`, "Unexpected Status Code (400)", KindUnrecognized},
		{"binary garbage", http.StatusInternalServerError, "\x00\xff<\x01>&&;", "Server Error (500)", KindUnrecognized},
		{"other xml root", http.StatusConflict, `<Error>conflict</Error>`, "Unexpected Status Code (409)", KindUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(tt.statusCode, tt.body)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, tt.body, e.RawDiagnostic)
			assert.Equal(t, tt.statusCode, e.StatusCode)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.message, e.Error())
		})
	}
}

func TestClassifyResponseDocumentDetails(t *testing.T) {
	e := Classify(http.StatusBadRequest, responseDocument)
	assert.Equal(t, "RWS00024", e.ReasonCode)
	assert.Equal(t, "/ODM/ClinicalData[1]/SubjectData[1]", e.ErrorOriginLocation)
	assert.Equal(t, "5b1fa9a3-0cf3-46b6-8304-37c2e3b7d04f5", e.ReferenceNumber)
}

func TestClassifyRecoversFromInterpreterPanic(t *testing.T) {
	saved := cascade
	defer func() { cascade = saved }()
	cascade = []interpreter{
		func(string) (*Error, bool) { panic("broken interpreter") },
		fromHTMLPage,
	}
	e := Classify(http.StatusBadRequest, iisPage)
	assert.Equal(t, "IIS Error", e.Message)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "response_document", KindResponseDocument.String())
	assert.Equal(t, "odm_document", KindODMDocument.String())
	assert.Equal(t, "iis_page", KindIISPage.String())
	assert.Equal(t, "unrecognized", KindUnrecognized.String())
}
