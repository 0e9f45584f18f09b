package mockvendor

import (
	"archive/zip"
	"bytes"
	"strings"

	"github.com/magicpod-ci/pipeline/framework/helpers"
)

// BuildArchive produces a well-formed ZIP archive containing the given files.
// Entries are written in sorted name order and stored uncompressed, so repeated
// builds are byte-identical and the archive size tracks the content size.
func BuildArchive(files map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range helpers.SortedKeys(files) {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		if err != nil {
			panic(err)
		}
		if _, err := f.Write([]byte(files[name])); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// ClientArchive is a plausible client distribution: an executable plus a readme,
// padded well past any minimum-size validation threshold.
func ClientArchive() []byte {
	return BuildArchive(map[string]string{
		"magicpod-api-client": strings.Repeat("#!binary\n", 400),
		"README.txt":          "MagicPod API client\n",
	})
}

// CorruptTail truncates the end of an archive, destroying the central directory
// while leaving the leading signature bytes intact.
func CorruptTail(archive []byte) []byte {
	cut := len(archive) / 4
	if cut == 0 {
		cut = 1
	}
	return archive[:len(archive)-cut]
}
