package scoring

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var releaseDate = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}-\d{1,2}-\d{1,2}`)

// ParseReleaseName recovers repository and version from an extracted file
// name such as fga-eps-mds-2022-1-MeasureSoftGram-Service-09-11-2022-16-11-42-develop.msgram.
// The version is the embedded dd-mm-yyyy-hh-mm timestamp.
func ParseReleaseName(filename string) (repository, version string, err error) {
	base := filepath.Base(filename)
	loc := releaseDate.FindStringIndex(base)
	if loc == nil {
		return "", "", fmt.Errorf("no dd-mm-yyyy-hh-mm date in file name %q", base)
	}
	version = base[loc[0]:loc[1]]
	repository = strings.TrimSuffix(base[:loc[0]], "-")
	return repository, version, nil
}
