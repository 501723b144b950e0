package app

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goremoteid/pkg/remoteid"
)

func newTestCollector() *AuthCollector {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewAuthCollector(logger)
}

// authPages splits data into an initial page and subsequent pages
func authPages(t *testing.T, authType remoteid.AuthenticationType, data []byte) []remoteid.Authentication {
	t.Helper()

	last := 0
	if len(data) > remoteid.AuthInitialData {
		last = (len(data) - remoteid.AuthInitialData + remoteid.AuthPageData - 1) / remoteid.AuthPageData
	}

	var initialData [remoteid.AuthInitialData]byte
	rest := data[copy(initialData[:], data):]

	initial, err := remoteid.NewAuthInitial(authType, last, len(data), remoteid.SystemTimestamp(86400), initialData)
	require.NoError(t, err)

	pages := []remoteid.Authentication{initial}
	for page := 1; page <= last; page++ {
		var pageData [remoteid.AuthPageData]byte
		rest = rest[copy(pageData[:], rest):]

		subsequent, err := remoteid.NewAuthSubsequent(authType, page, pageData)
		require.NoError(t, err)
		pages = append(pages, subsequent)
	}
	return pages
}

// TestAuthCollector_Reassembly tests page ordering and length trimming
func TestAuthCollector_Reassembly(t *testing.T) {
	signature := bytes.Repeat([]byte("signature-"), 10)[:100]

	tests := []struct {
		name  string
		data  []byte
		order []int
	}{
		{name: "Initial page only", data: signature[:12], order: []int{0}},
		{name: "Exactly one page", data: signature[:17], order: []int{0}},
		{name: "In order", data: signature, order: []int{0, 1, 2, 3, 4}},
		{name: "Reversed", data: signature, order: []int{4, 3, 2, 1, 0}},
		{name: "Initial in the middle", data: signature[:60], order: []int{2, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCollector()
			pages := authPages(t, remoteid.AuthOperatorIDSignature, tt.data)
			require.Len(t, pages, len(tt.order))

			for i, index := range tt.order {
				msg, complete, err := c.Add(pages[index])
				require.NoError(t, err)

				if i < len(tt.order)-1 {
					assert.False(t, complete)
					continue
				}

				require.True(t, complete)
				assert.Equal(t, tt.data, msg.Data)
				assert.Equal(t, remoteid.AuthOperatorIDSignature, msg.Type)
				assert.Equal(t, remoteid.SystemTimestamp(86400), msg.Timestamp)
				assert.Equal(t, len(pages), msg.Pages)
			}

			assert.Equal(t, 0, c.Pending())
			assert.Equal(t, 1, c.Complete())
		})
	}
}

// TestAuthCollector_Mismatch tests pages that do not belong to the message
func TestAuthCollector_Mismatch(t *testing.T) {
	c := newTestCollector()
	pages := authPages(t, remoteid.AuthUASIDSignature, bytes.Repeat([]byte{0xAA}, 40))
	require.Len(t, pages, 2)

	_, complete, err := c.Add(pages[0])
	require.NoError(t, err)
	assert.False(t, complete)

	other, err := remoteid.NewAuthSubsequent(remoteid.AuthMessageSetSignature, 1, [remoteid.AuthPageData]byte{})
	require.NoError(t, err)
	_, _, err = c.Add(other)
	assert.Error(t, err)

	beyond, err := remoteid.NewAuthSubsequent(remoteid.AuthUASIDSignature, 5, [remoteid.AuthPageData]byte{})
	require.NoError(t, err)
	_, _, err = c.Add(beyond)
	assert.Error(t, err)

	assert.Equal(t, 1, c.Pending())

	msg, complete, err := c.Add(pages[1])
	require.NoError(t, err)
	require.True(t, complete)
	assert.Len(t, msg.Data, 40)
}

// TestAuthCollector_Restart tests that a new initial page drops stale pages
func TestAuthCollector_Restart(t *testing.T) {
	c := newTestCollector()

	stale, err := remoteid.NewAuthSubsequent(remoteid.AuthMessageSetSignature, 3, [remoteid.AuthPageData]byte{})
	require.NoError(t, err)
	_, complete, err := c.Add(stale)
	require.NoError(t, err)
	assert.False(t, complete)
	assert.Equal(t, 1, c.Pending())

	pages := authPages(t, remoteid.AuthUASIDSignature, bytes.Repeat([]byte{0x55}, 30))
	_, complete, err = c.Add(pages[0])
	require.NoError(t, err)
	assert.False(t, complete)
	assert.Equal(t, 1, c.Pending(), "stale page of another type dropped")

	c.Reset()
	assert.Equal(t, 0, c.Pending())
}
