package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sammcj/pdfsection/internal/outline"
	"github.com/sirupsen/logrus"
)

// pdftk dump_data_utf8 record tags. A bookmark record is
// BookmarkBegin / BookmarkTitle / BookmarkLevel / BookmarkPageNumber,
// page number last.
const (
	tagTitle = "BookmarkTitle: "
	tagLevel = "BookmarkLevel: "
	tagPage  = "BookmarkPageNumber: "
	tagPages = "NumberOfPages: "
)

func pdftkAvailable() bool {
	_, err := exec.LookPath("pdftk")
	return err == nil
}

// loadPDFTK shells out to `pdftk <path> dump_data_utf8` and parses the
// bookmark records from its metadata dump.
func loadPDFTK(ctx context.Context, logger *logrus.Logger, path string) (outline.Outline, error) {
	cmd := exec.CommandContext(ctx, "pdftk", path, "dump_data_utf8")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag != "" {
			return outline.Outline{}, fmt.Errorf("pdftk dump_data_utf8 failed: %w: %s", err, diag)
		}
		return outline.Outline{}, fmt.Errorf("pdftk dump_data_utf8 failed: %w", err)
	}

	o, err := parseDumpData(&stdout)
	if err != nil {
		return outline.Outline{}, err
	}

	logger.WithFields(logrus.Fields{
		"source":    KindPDFTK,
		"bookmarks": len(o.Entries),
		"pages":     o.LastPage,
	}).Debug("Outline loaded")

	return o, nil
}

// parseDumpData extracts bookmark records and the page count from a pdftk
// metadata dump. Records missing a page number (bookmarks without a page
// destination) are skipped.
func parseDumpData(r *bytes.Buffer) (outline.Outline, error) {
	var o outline.Outline
	var title string
	var level int
	var haveTitle, haveLevel bool

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, tagTitle):
			title = decodeEntities(strings.TrimPrefix(line, tagTitle))
			haveTitle = true
		case strings.HasPrefix(line, tagLevel):
			n, err := strconv.Atoi(strings.TrimPrefix(line, tagLevel))
			if err != nil {
				return outline.Outline{}, fmt.Errorf("malformed bookmark level %q: %w", line, err)
			}
			level = n
			haveLevel = true
		case strings.HasPrefix(line, tagPage):
			n, err := strconv.Atoi(strings.TrimPrefix(line, tagPage))
			if err != nil {
				return outline.Outline{}, fmt.Errorf("malformed bookmark page %q: %w", line, err)
			}
			if haveTitle && haveLevel && n >= 1 {
				o.Entries = append(o.Entries, outline.Entry{Title: title, Level: level, Page: n})
			}
			haveTitle, haveLevel = false, false
		case strings.HasPrefix(line, tagPages):
			n, err := strconv.Atoi(strings.TrimPrefix(line, tagPages))
			if err != nil {
				return outline.Outline{}, fmt.Errorf("malformed page count %q: %w", line, err)
			}
			o.LastPage = n
		}
	}
	if err := scanner.Err(); err != nil {
		return outline.Outline{}, fmt.Errorf("failed to read pdftk output: %w", err)
	}

	if o.LastPage == 0 {
		return outline.Outline{}, fmt.Errorf("pdftk output did not include a page count")
	}
	return o, nil
}

// decodeEntities reverses the XML-style escaping pdftk applies to titles
// (&amp;, &lt;, &gt;, &quot; and numeric &#NN; references).
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		entity := s[i : i+end+1]
		switch {
		case entity == "&amp;":
			b.WriteByte('&')
		case entity == "&lt;":
			b.WriteByte('<')
		case entity == "&gt;":
			b.WriteByte('>')
		case entity == "&quot;":
			b.WriteByte('"')
		case strings.HasPrefix(entity, "&#"):
			if n, err := strconv.Atoi(entity[2 : len(entity)-1]); err == nil && n > 0 {
				b.WriteRune(rune(n))
			} else {
				b.WriteString(entity)
			}
		default:
			b.WriteString(entity)
		}
		i += end + 1
	}
	return b.String()
}
