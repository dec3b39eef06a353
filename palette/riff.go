package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

// A RIFF PAL data chunk carries a Windows LOGPALETTE: palVersion (0x0300),
// palNumEntries, then 4 bytes per entry (red, green, blue, flags).

const logPaletteVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadFrom decodes every palette in a RIFF PAL stream, descending into
// nested PAL lists.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readChunks(rd, nil)
}

func readChunks(r *riff.Reader, res []color.Palette) ([]color.Palette, error) {
	for {
		id, size, data, err := r.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("could not read chunk %d: %w", len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list at chunk %d: %w", len(res), lerr)
			}
			if listType != palType {
				return res, fmt.Errorf("unsupported list type at chunk %d: %s", len(res), string(listType[:]))
			}
			if res, err = readChunks(list, res); err != nil {
				return res, err
			}
		case dataType:
			pal, perr := readLogPalette(data)
			if perr != nil {
				return res, fmt.Errorf("could not read palette %d: %w", len(res), perr)
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("unsupported chunk type at chunk %d: %s", len(res), string(id[:]))
		}
	}
}

func readLogPalette(r io.Reader) (color.Palette, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	if ver := binary.LittleEndian.Uint16(head[:2]); ver != logPaletteVersion {
		return nil, fmt.Errorf("unsupported palette version: %#04x", ver)
	}

	count := binary.LittleEndian.Uint16(head[2:])
	pal := make(color.Palette, count)
	var entry [4]byte
	for i := uint16(0); i < count; i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return pal, fmt.Errorf("could not read color %d/%d: %w", i, count, err)
		}
		pal[i] = color.RGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xFF}
	}

	return pal, nil
}

// WriteTo encodes palettes as a RIFF PAL document, one data chunk each.
func WriteTo(w io.Writer, pals []color.Palette) (int64, error) {
	docSize := 4
	for _, pal := range pals {
		docSize += 8 + 4 + len(pal)*4 // chunk header + LOGPALETTE header + entries
	}

	var n int64
	head := append(riffType[:], binary.LittleEndian.AppendUint32(nil, uint32(docSize))...)
	head = append(head, palType[:]...)
	if err := writeAll(w, &n, head); err != nil {
		return n, fmt.Errorf("could not write RIFF header: %w", err)
	}

	for i, pal := range pals {
		if err := writeLogPalette(w, &n, pal); err != nil {
			return n, fmt.Errorf("could not write palette %d: %w", i, err)
		}
	}

	return n, nil
}

func writeLogPalette(w io.Writer, n *int64, pal color.Palette) error {
	head := append(dataType[:], binary.LittleEndian.AppendUint32(nil, uint32(4+len(pal)*4))...)
	head = binary.LittleEndian.AppendUint16(head, logPaletteVersion)
	head = binary.LittleEndian.AppendUint16(head, uint16(len(pal)))
	if err := writeAll(w, n, head); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	for i, col := range pal {
		c := color.RGBAModel.Convert(col).(color.RGBA)
		if err := writeAll(w, n, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return nil
}

func writeAll(w io.Writer, n *int64, b []byte) error {
	written, err := w.Write(b)
	*n += int64(written)
	if err != nil {
		return err
	}
	if written != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", written, len(b))
	}
	return nil
}
