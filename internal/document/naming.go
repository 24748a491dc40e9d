package document

import (
	"path/filepath"
	"strings"
)

// PDFExtension is the output container's filename extension.
const PDFExtension = ".pdf"

// Default artifact names when the user supplies nothing.
const (
	DefaultMergeName   = "documentos_combinados.pdf"
	DefaultArchiveName = "documentos_firmados.zip"
)

// signedSuffix is appended to a document's stem when it is stamped.
const signedSuffix = "_firmado"

// EnsureExtension forces name to end in ext (case-insensitive check), so
// applying it twice yields the same string as applying it once.
func EnsureExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}
	return name + ext
}

// SwapExtension replaces name's extension with ext, or appends ext when
// name has none.
func SwapExtension(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// ResolveMergeName resolves the merge artifact's suggested filename:
// an explicit override wins (extension enforced), then a source document's
// name with its extension swapped, then the literal default.
func ResolveMergeName(override, fromDocument string) string {
	if s := strings.TrimSpace(override); s != "" {
		return EnsureExtension(s, PDFExtension)
	}
	if fromDocument != "" {
		return SwapExtension(fromDocument, PDFExtension)
	}
	return DefaultMergeName
}

// SignedName derives the stamped artifact's name from the original:
// the stem plus "_firmado", re-suffixed with the container extension.
func SignedName(original string) string {
	stem := strings.TrimSuffix(original, filepath.Ext(original))
	if stem == "" {
		stem = "documento"
	}
	return stem + signedSuffix + PDFExtension
}
