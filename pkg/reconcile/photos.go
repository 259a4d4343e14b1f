package reconcile

import (
	"regexp"
	"strings"

	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

// Column names of the photo-links sheet.
const (
	photoColName = "Name"
	photoColURL  = "URL"
)

var (
	rawFileRx  = regexp.MustCompile(`(?i)\.(?:ORF|CR2|NEF|ARW)$`)
	camIDRx    = regexp.MustCompile(`(?i)(CAM\d+)`)
	driveIDRx  = regexp.MustCompile(`file/d/(.*?)/view`)
	proxyURL   = "https://wsrv.nl/?url=https://drive.google.com/uc?id="
	proxySizes = "&w=400&output=webp"
)

// photoLinks pairs specimen IDs with proxied image URLs from the
// photo-links sheet. Camera RAW files are skipped, the specimen ID is
// extracted from the file name, and the Google Drive file ID is rewritten
// into a wsrv.nl thumbnail URL. The first photo per specimen wins.
func photoLinks(batch record.Batch) map[string]string {
	photos := make(map[string]string)
	if !batch.HasColumn(photoColName) || !batch.HasColumn(photoColURL) {
		return photos
	}

	for _, row := range batch.Rows {
		name := strings.TrimSpace(row[photoColName])
		if name == "" || rawFileRx.MatchString(name) {
			continue
		}

		m := camIDRx.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		id := cleanSpecimenID(m[1])
		if id == "" {
			continue
		}
		if _, ok := photos[id]; ok {
			continue
		}

		drive := driveIDRx.FindStringSubmatch(row[photoColURL])
		if drive == nil || drive[1] == "" {
			continue
		}
		photos[id] = proxyURL + drive[1] + proxySizes
	}

	return photos
}
