package ridership

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/transitstats/mta-ridership/internal/logging"
)

// DefaultSourceURL is the published daily ridership table.
const DefaultSourceURL = "https://raw.githubusercontent.com/plotly/datasets/master/MTA_Ridership_by_DATA_NY_GOV.csv"

// IsLocalSource reports whether source names a file rather than an http(s) URL.
func IsLocalSource(source string) bool {
	return !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
}

func rawRidershipData(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if IsLocalSource(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local ridership file: %w", err)
		}
		return b, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building ridership request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading ridership data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logging.FromContext(ctx), "ridership_download")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading ridership data: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading ridership data: %w", err)
	}
	return b, nil
}

// Fetch loads the dataset from a URL or a local path.
func Fetch(ctx context.Context, client *http.Client, source string) (*Dataset, error) {
	b, err := rawRidershipData(ctx, client, source)
	if err != nil {
		return nil, err
	}

	ds, err := Load(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("error parsing ridership data from %s: %w", source, err)
	}
	return ds, nil
}
