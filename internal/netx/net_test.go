package netx

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presignedURL = "http://127.0.0.1:9000/plants/users/2026/10/14/abc?X-Amz-Signature=sig"

func TestUploadToPresignedURL(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	var gotCT string
	var gotBody []byte
	httpmock.RegisterResponder(http.MethodPut, presignedURL,
		func(req *http.Request) (*http.Response, error) {
			gotCT = req.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(req.Body)
			return httpmock.NewStringResponse(http.StatusOK, ""), nil
		})

	err := UploadToPresignedURL(context.Background(), presignedURL, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, []byte("png-bytes"), gotBody)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestUploadToPresignedURL_DefaultContentType(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	var gotCT string
	httpmock.RegisterResponder(http.MethodPut, presignedURL,
		func(req *http.Request) (*http.Response, error) {
			gotCT = req.Header.Get("Content-Type")
			return httpmock.NewStringResponse(http.StatusOK, ""), nil
		})

	require.NoError(t, UploadToPresignedURL(context.Background(), presignedURL, "", []byte{1}))
	assert.Equal(t, "application/octet-stream", gotCT)
}

func TestUploadToPresignedURL_Non200(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPut, presignedURL,
		httpmock.NewStringResponder(http.StatusForbidden, "SignatureDoesNotMatch"))

	err := UploadToPresignedURL(context.Background(), presignedURL, "image/jpeg", []byte{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload failed")
	assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
}

func TestUploadToPresignedURL_TransportError(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	// No responder registered: httpmock returns a transport error.
	err := UploadToPresignedURL(context.Background(), presignedURL, "image/jpeg", []byte{1})
	require.Error(t, err)
}

func TestUploadToPresignedURL_BadURL(t *testing.T) {
	err := UploadToPresignedURL(context.Background(), "://bad", "image/jpeg", nil)
	require.Error(t, err)
}
