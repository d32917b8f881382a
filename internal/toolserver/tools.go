package toolserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kiosk404/helix/internal/toolserver/sandbox"
)

const (
	toolNameReadFile = "read_file"
	toolNameListFile = "list_file"
	toolNameGrep     = "grep"
)

// Canonical tool error codes. They prefix every error payload so the model
// (and tests) can tell failure classes apart.
const (
	codeAccessDenied   = "ACCESS_DENIED"
	codeNotFound       = "NOT_FOUND"
	codeNotAFile       = "NOT_A_FILE"
	codeNotADirectory  = "NOT_A_DIRECTORY"
	codeNotText        = "NOT_TEXT"
	codeInvalidPattern = "INVALID_PATTERN"
	codeInternal       = "INTERNAL"
)

// maxLineBytes bounds a single scanned line during grep.
const maxLineBytes = 1 << 20

func toolError(code, format string, args ...interface{}) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("ERROR: %s: %s", code, fmt.Sprintf(format, args...)))
}

func resolveError(rel string, err error) *mcp.CallToolResult {
	if errors.Is(err, sandbox.ErrAccessDenied) {
		return toolError(codeAccessDenied, "path '%s' is outside user directory", rel)
	}
	return toolError(codeInternal, "%v", err)
}

// handleReadFile returns the contents of one text file inside the sandbox.
func (s *Server) handleReadFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	relPath, err := request.RequireString("file_path")
	if err != nil {
		return toolError(codeInvalidPattern, "file_path is required"), nil
	}

	fullPath, err := s.root.Resolve(relPath)
	if err != nil {
		return resolveError(relPath, err), nil
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return toolError(codeNotFound, "file '%s' not found", relPath), nil
		}
		return toolError(codeInternal, "%v", err), nil
	}
	if info.IsDir() {
		return toolError(codeNotAFile, "'%s' is not a file", relPath), nil
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return toolError(codeInternal, "%v", err), nil
	}
	if !utf8.Valid(data) {
		return toolError(codeNotText, "'%s' is not a text file or uses unsupported encoding", relPath), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

// handleListFile lists one directory, entries sorted by name, each tagged
// [DIR] or [FILE].
func (s *Server) handleListFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	relPath := request.GetString("directory_path", "")
	display := relPath
	if display == "" {
		display = "."
	}

	fullPath, err := s.root.Resolve(relPath)
	if err != nil {
		return resolveError(relPath, err), nil
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return toolError(codeNotFound, "directory '%s' not found", display), nil
		}
		return toolError(codeInternal, "%v", err), nil
	}
	if !info.IsDir() {
		return toolError(codeNotADirectory, "'%s' is not a directory", display), nil
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return toolError(codeInternal, "%v", err), nil
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Directory '%s' is empty", display)), nil
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			items = append(items, "[DIR]  "+entry.Name())
		} else {
			items = append(items, "[FILE] "+entry.Name())
		}
	}

	return mcp.NewToolResultText(strings.Join(items, "\n")), nil
}

// handleGrep searches for a regex pattern in one file or, when no file is
// given, in every file under the sandbox root. The recursive walk uses
// filepath.WalkDir, which visits entries in lexical order, so matches are
// ordered by relative path and then line number regardless of how the
// filesystem enumerates directories. At most MaxGrepMatches matches are
// returned in total; hitting the cap annotates the result as truncated.
func (s *Server) handleGrep(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := request.RequireString("pattern")
	if err != nil {
		return toolError(codeInvalidPattern, "pattern is required"), nil
	}

	// Compile before touching any file.
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return toolError(codeInvalidPattern, "invalid regex pattern: %v", err), nil
	}

	relPath := request.GetString("file_path", "")

	var matches []string
	if relPath != "" {
		fullPath, rerr := s.root.Resolve(relPath)
		if rerr != nil {
			return resolveError(relPath, rerr), nil
		}

		info, serr := os.Stat(fullPath)
		if serr != nil {
			if os.IsNotExist(serr) {
				return toolError(codeNotFound, "file '%s' not found", relPath), nil
			}
			return toolError(codeInternal, "%v", serr), nil
		}
		if info.IsDir() {
			return toolError(codeNotAFile, "'%s' is not a file", relPath), nil
		}

		matches = searchFile(fullPath, relPath, regex, MaxGrepMatches)
	} else {
		rootDir := s.root.Dir()
		if _, serr := os.Stat(rootDir); os.IsNotExist(serr) {
			return toolError(codeNotFound, "user directory does not exist"), nil
		}

		_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, werr error) error {
			if werr != nil {
				// Unreadable entries are skipped, not fatal.
				return nil
			}
			if d.IsDir() {
				return nil
			}

			rel, rerr := filepath.Rel(rootDir, path)
			if rerr != nil {
				return nil
			}

			fileMatches := searchFile(path, filepath.ToSlash(rel), regex, MaxGrepMatches-len(matches))
			matches = append(matches, fileMatches...)

			if len(matches) >= MaxGrepMatches {
				return fs.SkipAll
			}
			return nil
		})
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No matches found for pattern: " + pattern), nil
	}

	result := strings.Join(matches, "\n")
	if len(matches) >= MaxGrepMatches {
		result += fmt.Sprintf("\n\n(Showing first %d matches)", MaxGrepMatches)
	}

	return mcp.NewToolResultText(result), nil
}

// searchFile collects up to maxMatches matching lines from one file.
// Binary or unreadable files yield no matches rather than an error.
func searchFile(path, displayName string, regex *regexp.Regexp, maxMatches int) []string {
	if maxMatches <= 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var matches []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			// Treat undecodable content like the unreadable case: skip
			// the whole file.
			return nil
		}
		if regex.MatchString(line) {
			matches = append(matches, fmt.Sprintf("%s:%d:%s",
				displayName, lineNum, strings.TrimRight(line, " \t\r\n")))
			if len(matches) >= maxMatches {
				break
			}
		}
	}

	return matches
}
