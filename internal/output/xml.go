// Package output renders directory trees as text and converts them to and from XML.
package output

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/temirov/dirtree/internal/types"
)

const (
	xmlIndent = "  "

	errorCreateXMLFileFormat   = "creating XML file %s: %w"
	errorWriteXMLFileFormat    = "writing XML file %s: %w"
	errorOpenXMLFileFormat     = "opening XML file %s: %w"
	errorParseXMLFormat        = "parsing XML: %w"
	errorParseXMLFileFormat    = "parsing XML file %s: %w"
	errorInvalidSizeFormat     = "invalid size %q for file %q: %w"
	errorUnsupportedCharset    = "unsupported charset %q: %w"
	errorTrailingRootElement   = "unexpected element <%s> after the root element"
	errorMissingRootElementMsg = "missing root element"
	errorTextOutsideRootMsg    = "text outside the root element"
)

// xmlFile mirrors a <file> element. Size is kept as text so an empty attribute
// decodes the same way as a missing one.
type xmlFile struct {
	Name string `xml:"name,attr"`
	Size string `xml:"size,attr,omitempty"`
	Path string `xml:"path,attr"`
}

// xmlDirectory mirrors a <directory> element. It has no XMLName so the root
// element is accepted whatever its tag.
type xmlDirectory struct {
	Name           string         `xml:"name,attr"`
	Files          []xmlFile      `xml:"file"`
	Subdirectories []xmlDirectory `xml:"directory"`
}

// EncodeXML writes a complete XML document describing the directory.
func EncodeXML(writer io.Writer, directory *types.Directory) error {
	if _, err := io.WriteString(writer, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(writer)
	encoder.Indent("", xmlIndent)
	rootElement := xml.StartElement{Name: xml.Name{Local: types.XMLDirectoryElement}}
	if err := encoder.EncodeElement(toXMLDirectory(directory), rootElement); err != nil {
		return err
	}
	if err := encoder.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(writer, "\n")
	return err
}

// SaveXML writes the directory to filename, replacing any existing content.
func SaveXML(directory *types.Directory, filename string) (err error) {
	fileHandle, createError := os.Create(filename)
	if createError != nil {
		return fmt.Errorf(errorCreateXMLFileFormat, filename, createError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorWriteXMLFileFormat, filename, closeError)
		}
	}()
	if encodeError := EncodeXML(fileHandle, directory); encodeError != nil {
		return fmt.Errorf(errorWriteXMLFileFormat, filename, encodeError)
	}
	return nil
}

// DecodeXML parses an XML document into a directory tree. Elements other than
// <file> and <directory> are ignored.
func DecodeXML(reader io.Reader) (*types.Directory, error) {
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charsetReader

	rootElement, prologError := readPrologue(decoder)
	if prologError != nil {
		return nil, fmt.Errorf(errorParseXMLFormat, prologError)
	}
	var root xmlDirectory
	if decodeError := decoder.DecodeElement(&root, &rootElement); decodeError != nil {
		return nil, fmt.Errorf(errorParseXMLFormat, decodeError)
	}
	if trailingError := ensureDocumentEnds(decoder); trailingError != nil {
		return nil, fmt.Errorf(errorParseXMLFormat, trailingError)
	}

	directory, convertError := fromXMLDirectory(root)
	if convertError != nil {
		return nil, fmt.Errorf(errorParseXMLFormat, convertError)
	}
	return directory, nil
}

// LoadXML reads the XML document stored in filename.
func LoadXML(filename string) (*types.Directory, error) {
	fileHandle, openError := os.Open(filename)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenXMLFileFormat, filename, openError)
	}
	defer fileHandle.Close()

	directory, decodeError := DecodeXML(fileHandle)
	if decodeError != nil {
		return nil, fmt.Errorf(errorParseXMLFileFormat, filename, decodeError)
	}
	return directory, nil
}

// readPrologue consumes everything before the root element and returns its start tag.
// Only whitespace, comments, processing instructions and directives may precede it.
func readPrologue(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		token, tokenError := decoder.Token()
		if errors.Is(tokenError, io.EOF) {
			return xml.StartElement{}, errors.New(errorMissingRootElementMsg)
		}
		if tokenError != nil {
			return xml.StartElement{}, tokenError
		}
		switch typedToken := token.(type) {
		case xml.StartElement:
			return typedToken, nil
		case xml.CharData:
			if !isWhitespace(typedToken) {
				return xml.StartElement{}, errors.New(errorTextOutsideRootMsg)
			}
		}
	}
}

// ensureDocumentEnds rejects a second root element, text after the root and syntax errors.
func ensureDocumentEnds(decoder *xml.Decoder) error {
	for {
		token, tokenError := decoder.Token()
		if errors.Is(tokenError, io.EOF) {
			return nil
		}
		if tokenError != nil {
			return tokenError
		}
		switch typedToken := token.(type) {
		case xml.StartElement:
			return fmt.Errorf(errorTrailingRootElement, typedToken.Name.Local)
		case xml.CharData:
			if !isWhitespace(typedToken) {
				return errors.New(errorTextOutsideRootMsg)
			}
		}
	}
}

func isWhitespace(data xml.CharData) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// charsetReader decodes documents declaring a non UTF-8 encoding, and UTF-8 labels
// such as "utf8" that encoding/xml does not recognize on its own.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	encoding, lookupError := htmlindex.Get(charset)
	if lookupError != nil {
		return nil, fmt.Errorf(errorUnsupportedCharset, charset, lookupError)
	}
	return encoding.NewDecoder().Reader(input), nil
}

func toXMLDirectory(directory *types.Directory) xmlDirectory {
	if directory == nil {
		return xmlDirectory{}
	}
	element := xmlDirectory{Name: directory.Name}
	for _, fileEntry := range directory.Files {
		fileElement := xmlFile{Name: fileEntry.Name, Path: fileEntry.Path}
		if fileEntry.HasSize() {
			fileElement.Size = strconv.FormatInt(*fileEntry.Size, 10)
		}
		element.Files = append(element.Files, fileElement)
	}
	for _, subdirectory := range directory.Subdirectories {
		element.Subdirectories = append(element.Subdirectories, toXMLDirectory(subdirectory))
	}
	return element
}

func fromXMLDirectory(element xmlDirectory) (*types.Directory, error) {
	directory := &types.Directory{Name: element.Name}
	for _, fileElement := range element.Files {
		fileEntry := types.NewFileEntry(fileElement.Name, fileElement.Path)
		trimmedSize := strings.TrimSpace(fileElement.Size)
		if trimmedSize != "" {
			sizeBytes, parseError := strconv.ParseInt(trimmedSize, 10, 64)
			if parseError != nil {
				return nil, fmt.Errorf(errorInvalidSizeFormat, fileElement.Size, fileElement.Name, parseError)
			}
			fileEntry = fileEntry.WithSize(sizeBytes)
		}
		directory.Files = append(directory.Files, fileEntry)
	}
	for _, subdirectoryElement := range element.Subdirectories {
		subdirectory, convertError := fromXMLDirectory(subdirectoryElement)
		if convertError != nil {
			return nil, convertError
		}
		directory.Subdirectories = append(directory.Subdirectories, subdirectory)
	}
	return directory, nil
}
