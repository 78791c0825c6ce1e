package chunker

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
)

// Chunker splits lesson text into overlapping, context-prefixed chunks.
// Chunks are built from whole sentences so a chunk rarely ends mid-thought;
// adjacent chunks share roughly ChunkOverlap characters of trailing context.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
	}
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// ChunkLesson splits one lesson's text and applies the context prefix.
// The first chunk of a lesson is prefixed with "Lesson {n} content: "; every
// chunk of the last lesson of a course carries the course title as well, so
// chunks stay interpretable when retrieved in isolation. An empty lesson
// yields no chunks.
func (c *Chunker) ChunkLesson(lessonText, courseTitle string, lessonNumber int, lastLessonOfCourse bool) []string {
	raw := c.chunkText(lessonText)

	out := make([]string, 0, len(raw))
	for i, chunk := range raw {
		switch {
		case lastLessonOfCourse:
			chunk = fmt.Sprintf("Course %s Lesson %d content: %s", courseTitle, lessonNumber, chunk)
		case i == 0:
			chunk = fmt.Sprintf("Lesson %d content: %s", lessonNumber, chunk)
		}
		out = append(out, chunk)
	}
	return out
}

// chunkText greedily packs consecutive sentences into chunks of at most
// chunkSize characters. The next chunk starts by walking backward from the
// boundary until about chunkOverlap characters of the previous chunk are
// covered again.
func (c *Chunker) chunkText(text string) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(sentences) {
		end := start
		size := 0
		for end < len(sentences) {
			sentenceLen := len(sentences[end])
			if end > start {
				sentenceLen++ // joining space
			}
			if size+sentenceLen > c.chunkSize && end > start {
				break
			}
			size += sentenceLen
			end++
		}

		chunks = append(chunks, strings.Join(sentences[start:end], " "))

		if end == len(sentences) {
			break
		}

		// Walk backward from the boundary to re-include overlap context.
		next := end
		covered := 0
		for next > start+1 {
			covered += len(sentences[next-1]) + 1
			if covered > c.chunkOverlap {
				break
			}
			next--
		}
		start = next
	}

	return chunks
}

// abbreviations that commonly precede a period without ending the sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"st": true, "vs": true, "etc": true, "no": true, "fig": true,
	"e.g": true, "i.e": true, "al": true, "approx": true,
}

// SplitSentences splits text on terminal punctuation followed by whitespace.
// A period after a known abbreviation or a single capital letter (an initial)
// does not end the sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Consume a run of terminal punctuation ("?!", "...").
		end := i
		for end+1 < len(runes) && (runes[end+1] == '.' || runes[end+1] == '!' || runes[end+1] == '?') {
			end++
		}

		// Only whitespace (or end of text) terminates a sentence.
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}

		if r == '.' && end == i && isAbbreviation(runes[start:i]) {
			continue
		}

		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		i = end
		start = end + 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// isAbbreviation reports whether the word ending at a period looks like an
// abbreviation rather than a sentence end.
func isAbbreviation(before []rune) bool {
	word := lastWord(before)
	if word == "" {
		return false
	}

	// Single capital letter: an initial, as in "J. Smith".
	if len([]rune(word)) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return true
	}

	return abbreviations[strings.ToLower(strings.TrimSuffix(word, "."))]
}

func lastWord(runes []rune) string {
	end := len(runes)
	i := end
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return string(runes[i:end])
}
