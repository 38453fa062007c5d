package rwsclient_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/RassulYunussov/rwsclient"
	"github.com/RassulYunussov/rwsclient/requests"
)

func ExampleConnection_Send() {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/RaveWebServices/version" {
			_, _ = w.Write([]byte("1.8.0"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("HTTP 503 Service Temporarily Unavailable"))
	}))
	defer s.Close()

	connection, err := rwsclient.New(s.URL,
		rwsclient.WithCredentials("rws_user", "secret"),
		rwsclient.WithTimeout(5*time.Second),
		rwsclient.WithRetry(3, 100*time.Millisecond))
	if err != nil {
		panic(err)
	}

	result, err := connection.Send(context.Background(), requests.Version())
	fmt.Println(result.Body, err)

	_, err = connection.Send(context.Background(), requests.ClinicalStudies())
	if serviceErr, ok := rwsclient.AsServiceError(err); ok {
		fmt.Println(serviceErr.StatusCode, serviceErr.Message)
	}
	// Output:
	// 1.8.0 <nil>
	// 503 Unexpected Status Code (503)
}

func ExampleRetries() {
	connection, err := rwsclient.New("https://innovate.mdsol.com", rwsclient.WithCredentials("rws_user", "secret"))
	if err != nil {
		panic(err)
	}
	spec, err := requests.FormData(requests.FormDataParams{
		ProjectName:     "Mediflex",
		EnvironmentName: "Prod",
		DatasetType:     requests.DatasetTypeRegular,
		FormOID:         "DM",
		Format:          requests.FormatCSV,
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(connection.URL(spec))
	// the call itself would override the connection defaults:
	// connection.Send(ctx, request, rwsclient.Retries(2), rwsclient.Timeout(time.Minute))
	// Output:
	// https://innovate.mdsol.com/RaveWebServices/studies/Mediflex(Prod)/datasets/regular/DM.csv
}
