package cvgen

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-cvgen/internal/fileutil"
)

var errEncrypted = errors.New("encrypted documents are not supported")

// pdfcpu installs a user config directory on first use unless told not to.
var disableConfigDir sync.Once

// PatchMetadata rewrites the PDF at path with meta as its document
// information dictionary. Pages are carried over unchanged, and entries of
// the previous dictionary that meta does not override are kept. The writer
// stamps Producer and ModDate.
// The result is staged in a sibling .tmp.pdf file and renamed over path.
func PatchMetadata(path string, meta Metadata) error {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is the PDF we just produced
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataPatch, err)
	}

	out, err := rewriteInfo(raw, meta)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataPatch, err)
	}

	if err := fileutil.WriteFileAtomic(path, out, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataPatch, err)
	}
	return nil
}

// ReadMetadata returns the document information fields of the PDF at path.
func ReadMetadata(path string) (meta Metadata, err error) {
	defer recoverPDF(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	return Metadata{
		Title:    info.Key("Title").Text(),
		Author:   info.Key("Author").Text(),
		Subject:  info.Key("Subject").Text(),
		Keywords: info.Key("Keywords").Text(),
		Creator:  info.Key("Creator").Text(),
	}, nil
}

// rewriteInfo parses raw with pdfcpu, replaces the Info entries and
// serializes the whole document again.
func rewriteInfo(raw []byte, meta Metadata) (_ []byte, err error) {
	defer recoverPDF(&err)

	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.ADDPROPERTIES

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), conf)
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %v", err)
	}
	if ctx.Encrypt != nil {
		return nil, errEncrypted
	}

	if err := setInfo(ctx, meta); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %v", err)
	}
	return buf.Bytes(), nil
}

// setInfo writes meta into the document information dictionary, creating
// the dictionary when the document has none.
func setInfo(ctx *model.Context, meta Metadata) error {
	var d types.Dict
	if ctx.Info != nil {
		old, err := ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return fmt.Errorf("reading Info: %v", err)
		}
		d = old
	}
	if d == nil {
		d = types.NewDict()
		ir, err := ctx.IndRefForNewObject(d)
		if err != nil {
			return fmt.Errorf("adding Info: %v", err)
		}
		ctx.Info = ir
	}

	d["Title"] = encodeText(meta.Title)
	d["Author"] = encodeText(meta.Author)
	d["Subject"] = encodeText(meta.Subject)
	d["Keywords"] = encodeText(meta.Keywords)
	if meta.Creator != "" {
		d["Creator"] = encodeText(meta.Creator)
	}
	return nil
}

// recoverPDF turns a reader panic on a malformed object into an error.
func recoverPDF(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed PDF: %v", r)
	}
}

// encodeText encodes s as a PDF text string in hex form: PDFDocEncoding
// bytes when s is printable ASCII, otherwise UTF-16BE with a byte order mark.
func encodeText(s string) types.HexLiteral {
	ascii := true
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c > 0x7e {
			ascii = false
			break
		}
	}
	if ascii {
		return hexLiteral([]byte(s))
	}

	units := utf16.Encode([]rune(s))
	buf := make([]byte, 2, 2+2*len(units))
	buf[0], buf[1] = 0xfe, 0xff
	for _, u := range units {
		buf = append(buf, byte(u>>8), byte(u))
	}
	return hexLiteral(buf)
}

func hexLiteral(b []byte) types.HexLiteral {
	return types.HexLiteral(strings.ToUpper(hex.EncodeToString(b)))
}
