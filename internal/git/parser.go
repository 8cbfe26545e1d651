package git

import (
	"strconv"
	"strings"
)

// parse state for a single pass over the diff text
type diffParseState struct {
	diff        *Diff
	currentFile *FileDiff
	currentHunk *Hunk
	oldLine     int
	newLine     int
}

// ParseDiff parses unified diff text into a Diff. It scans line by line
// without regex and assigns old/new line numbers to every hunk line so
// rules can report exact positions.
func ParseDiff(diffText string) (*Diff, error) {
	diff := &Diff{Files: make([]FileDiff, 0)}

	if strings.TrimSpace(diffText) == "" {
		return diff, nil
	}

	state := &diffParseState{diff: diff}

	start := 0
	for i := 0; i <= len(diffText); i++ {
		if i == len(diffText) || diffText[i] == '\n' {
			line := diffText[start:i]
			start = i + 1
			if len(line) == 0 {
				continue
			}
			state.parseLine(line)
		}
	}
	state.finalize()

	diff.CalculateStats()
	return diff, nil
}

func (s *diffParseState) parseLine(line string) {
	if strings.HasPrefix(line, "diff --git ") {
		s.handleNewFile(line)
		return
	}

	if s.currentFile == nil {
		return
	}

	if strings.HasPrefix(line, "@@") {
		s.handleHunkHeader(line)
		return
	}

	if s.handleFileStatus(line) {
		return
	}

	s.handleDiffLine(line)
}

func (s *diffParseState) handleNewFile(line string) {
	s.flushFile()

	oldPath, newPath := parseDiffGitLine(line)
	s.currentFile = &FileDiff{
		Path:    newPath,
		OldPath: oldPath,
		Status:  FileModified,
		Hunks:   make([]Hunk, 0, 4),
	}
	s.currentHunk = nil
}

func (s *diffParseState) handleHunkHeader(line string) {
	if s.currentHunk != nil {
		s.currentFile.Hunks = append(s.currentFile.Hunks, *s.currentHunk)
	}
	s.currentHunk = parseHunkHeader(line)
	s.oldLine = s.currentHunk.OldStart
	s.newLine = s.currentHunk.NewStart
}

func (s *diffParseState) handleFileStatus(line string) bool {
	switch {
	case strings.HasPrefix(line, "new file"):
		s.currentFile.Status = FileAdded
	case strings.HasPrefix(line, "deleted file"):
		s.currentFile.Status = FileDeleted
	case strings.HasPrefix(line, "rename from"):
		s.currentFile.Status = FileRenamed
	case strings.HasPrefix(line, "Binary files"):
		s.currentFile.IsBinary = true
	default:
		return false
	}
	return true
}

func (s *diffParseState) handleDiffLine(line string) {
	if s.currentHunk == nil || len(line) == 0 {
		return
	}

	l := Line{Type: LineContext, Content: line}

	switch line[0] {
	case '+':
		l.Type = LineAddition
		l.Content = line[1:]
		l.NewNumber = s.newLine
		s.newLine++
		s.currentFile.Additions++
	case '-':
		l.Type = LineDeletion
		l.Content = line[1:]
		l.OldNumber = s.oldLine
		s.oldLine++
		s.currentFile.Deletions++
	case ' ':
		l.Content = line[1:]
		l.OldNumber = s.oldLine
		l.NewNumber = s.newLine
		s.oldLine++
		s.newLine++
	case '\\':
		return // "\ No newline at end of file"
	default:
		return
	}

	s.currentHunk.Lines = append(s.currentHunk.Lines, l)
}

func (s *diffParseState) flushFile() {
	if s.currentFile == nil {
		return
	}
	if s.currentHunk != nil {
		s.currentFile.Hunks = append(s.currentFile.Hunks, *s.currentHunk)
		s.currentHunk = nil
	}
	s.diff.Files = append(s.diff.Files, *s.currentFile)
	s.currentFile = nil
}

func (s *diffParseState) finalize() {
	s.flushFile()
}

// parseDiffGitLine extracts paths from "diff --git a/path b/path"
func parseDiffGitLine(line string) (oldPath, newPath string) {
	const prefix = "diff --git "
	rest := line[len(prefix):]

	idx := strings.Index(rest, " b/")
	if idx == -1 {
		return "", ""
	}

	if len(rest) > 2 && rest[0] == 'a' && rest[1] == '/' {
		oldPath = rest[2:idx]
	} else {
		oldPath = rest[:idx]
	}
	newPath = rest[idx+3:]

	return oldPath, newPath
}

// parseHunkHeader parses "@@ -start,count +start,count @@" without regex.
func parseHunkHeader(line string) *Hunk {
	hunk := &Hunk{
		Header:   line,
		Lines:    make([]Line, 0, 32),
		OldLines: 1,
		NewLines: 1,
	}

	if !strings.HasPrefix(line, "@@ ") {
		return hunk
	}

	rest := line[3:]
	endIdx := strings.Index(rest, " @@")
	if endIdx == -1 {
		endIdx = len(rest)
	}
	rangeStr := rest[:endIdx]

	parts := strings.Split(rangeStr, " ")
	if len(parts) >= 2 {
		if strings.HasPrefix(parts[0], "-") {
			parseRange(parts[0][1:], &hunk.OldStart, &hunk.OldLines)
		}
		if strings.HasPrefix(parts[1], "+") {
			parseRange(parts[1][1:], &hunk.NewStart, &hunk.NewLines)
		}
	}

	return hunk
}

// parseRange parses "start,count" or "start"
func parseRange(s string, start, count *int) {
	idx := strings.Index(s, ",")
	if idx == -1 {
		if v, err := strconv.Atoi(s); err == nil {
			*start = v
		}
		*count = 1
		return
	}
	if v, err := strconv.Atoi(s[:idx]); err == nil {
		*start = v
	}
	if v, err := strconv.Atoi(s[idx+1:]); err == nil {
		*count = v
	}
}
