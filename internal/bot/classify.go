package bot

import (
	"path"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Alias1177/cryptosignals/internal/models"
)

// Kind is what an incoming message asks the bot to do.
type Kind int

const (
	KindIgnored Kind = iota
	KindStart
	KindHelp
	KindIdea
	KindMarket
	KindImage
	KindText
	KindUnknownCommand
	KindUnsupportedDocument
	KindUnsupportedFormat
)

var kindNames = map[Kind]string{
	KindIgnored:             "ignored",
	KindStart:               "start",
	KindHelp:                "help",
	KindIdea:                "idea",
	KindMarket:              "market",
	KindImage:               "image",
	KindText:                "text",
	KindUnknownCommand:      "unknown_command",
	KindUnsupportedDocument: "unsupported_document",
	KindUnsupportedFormat:   "unsupported_format",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SupportedImageFormats lists the image subtypes and file extensions accepted
// for chart analysis when sent as a document.
var SupportedImageFormats = []string{"jpg", "jpeg", "png", "gif", "webp"}

// Request is a classified message.
type Request struct {
	Kind  Kind
	Text  string
	Image models.ImageMetadata
}

var commands = map[string]Kind{
	"start":   KindStart,
	"help":    KindHelp,
	"idea":    KindIdea,
	"analyze": KindMarket,
}

// Classify maps a message onto the action it requests.
func Classify(m *tgbotapi.Message) Request {
	if m == nil {
		return Request{Kind: KindIgnored}
	}

	if strings.HasPrefix(m.Text, "/") {
		if kind, ok := commands[command(m)]; ok {
			return Request{Kind: kind, Text: m.Text}
		}
		return Request{Kind: KindUnknownCommand, Text: m.Text}
	}

	if len(m.Photo) > 0 {
		// Telegram lists sizes from smallest to largest.
		photo := m.Photo[len(m.Photo)-1]
		return Request{Kind: KindImage, Image: models.ImageMetadata{
			FileID:   photo.FileID,
			Width:    photo.Width,
			Height:   photo.Height,
			FileSize: photo.FileSize,
		}}
	}

	if doc := m.Document; doc != nil {
		if !strings.HasPrefix(strings.ToLower(doc.MimeType), "image/") {
			return Request{Kind: KindUnsupportedDocument}
		}
		image := models.ImageMetadata{
			FileID:   doc.FileID,
			FileSize: doc.FileSize,
			FileName: doc.FileName,
			MimeType: doc.MimeType,
		}
		if !supportedFormat(doc.MimeType, doc.FileName) {
			return Request{Kind: KindUnsupportedFormat, Image: image}
		}
		return Request{Kind: KindImage, Image: image}
	}

	if m.Text != "" {
		return Request{Kind: KindText, Text: m.Text}
	}
	return Request{Kind: KindIgnored}
}

// command extracts the command name without the leading slash and the
// @botname suffix. Entities are preferred, plain text is the fallback.
func command(m *tgbotapi.Message) string {
	if m.IsCommand() {
		return m.Command()
	}
	name := strings.TrimPrefix(strings.Fields(m.Text + " ")[0], "/")
	if i := strings.Index(name, "@"); i != -1 {
		name = name[:i]
	}
	return name
}

func supportedFormat(mimeType, fileName string) bool {
	subtype := strings.ToLower(strings.TrimPrefix(strings.ToLower(mimeType), "image/"))
	if i := strings.IndexAny(subtype, ";+"); i != -1 {
		subtype = subtype[:i]
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")

	for _, format := range SupportedImageFormats {
		if subtype == format || ext == format {
			return true
		}
	}
	return false
}
