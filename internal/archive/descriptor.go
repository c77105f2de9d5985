package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var imageFilePattern = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|webp)$`)

// IsImage reports whether name has a supported gallery image extension.
func IsImage(name string) bool {
	return imageFilePattern.MatchString(name)
}

// Descriptor is the parsed content of a character descriptor file.
type Descriptor struct {
	Character DescriptorCharacter `json:"character" yaml:"character"`
}

// DescriptorCharacter carries the dossier fields of a descriptor.
type DescriptorCharacter struct {
	Name       string `json:"name" yaml:"name"`
	Assignment string `json:"assignment" yaml:"assignment"`
	Stats      Stats  `json:"stats" yaml:"stats"`
	Tabs       []Tab  `json:"tabs" yaml:"tabs"`
}

// ParseDescriptor decodes descriptor bytes. The format follows the file
// extension; anything other than .yaml or .yml is read as JSON. Only syntax
// errors fail: fields of the wrong shape are left at their zero values.
func ParseDescriptor(name string, data []byte) (Descriptor, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAMLDescriptor(name, data)
	default:
		return parseJSONDescriptor(name, data)
	}
}

func parseJSONDescriptor(name string, data []byte) (Descriptor, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Descriptor{}, fmt.Errorf("parse json descriptor %s: %w", name, err)
	}

	var desc Descriptor
	var top map[string]json.RawMessage
	if json.Unmarshal(raw, &top) != nil {
		return desc, nil
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(top["character"], &fields) != nil {
		return desc, nil
	}

	info := &desc.Character
	info.Name = jsonScalar(fields["name"])
	info.Assignment = jsonScalar(fields["assignment"])
	if json.Unmarshal(fields["stats"], &info.Stats) != nil {
		info.Stats = nil
	}
	var tabs []json.RawMessage
	if json.Unmarshal(fields["tabs"], &tabs) == nil {
		for _, rawTab := range tabs {
			var tab Tab
			if json.Unmarshal(rawTab, &tab) == nil {
				info.Tabs = append(info.Tabs, tab)
			}
		}
	}
	return desc, nil
}

func parseYAMLDescriptor(name string, data []byte) (Descriptor, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Descriptor{}, fmt.Errorf("parse yaml descriptor %s: %w", name, err)
	}

	var desc Descriptor
	body := &root
	if body.Kind == yaml.DocumentNode && len(body.Content) > 0 {
		body = body.Content[0]
	}
	character := mappingValue(body, "character")
	if character == nil || character.Kind != yaml.MappingNode {
		return desc, nil
	}

	info := &desc.Character
	info.Name = yamlScalar(mappingValue(character, "name"))
	info.Assignment = yamlScalar(mappingValue(character, "assignment"))
	if stats := mappingValue(character, "stats"); stats != nil {
		if stats.Decode(&info.Stats) != nil {
			info.Stats = nil
		}
	}
	if tabs := mappingValue(character, "tabs"); tabs != nil && tabs.Kind == yaml.SequenceNode {
		for _, tabNode := range tabs.Content {
			var tab Tab
			if tabNode.Decode(&tab) == nil {
				info.Tabs = append(info.Tabs, tab)
			}
		}
	}
	return desc, nil
}

// jsonScalar renders a string, number or boolean as text. Anything else is
// empty.
func jsonScalar(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{', '[', 'n':
		return ""
	}
	return scalarText(trimmed)
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	var value *yaml.Node
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		if node.Content[idx].Value == key {
			value = node.Content[idx+1]
		}
	}
	return value
}

func yamlScalar(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

// readDescriptor loads and parses the descriptor at path.
func readDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("read descriptor: %w", err)
	}
	return ParseDescriptor(filepath.Base(path), data)
}

// pickDescriptor returns the descriptor file among names, which must be in
// lexical order. JSON wins over YAML.
func pickDescriptor(names []string) string {
	for _, name := range names {
		if strings.HasSuffix(name, ".json") {
			return name
		}
	}
	for _, name := range names {
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			return name
		}
	}
	return ""
}

// pickPortrait prefers an image named after the folder, then the first image.
func pickPortrait(folder string, images []string) string {
	needle := strings.ToLower(folder)
	for _, image := range images {
		if strings.Contains(strings.ToLower(image), needle) {
			return image
		}
	}
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

func characterItem(folder string, desc Descriptor, images []string) Item {
	info := desc.Character
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = folder
	}
	sub := strings.TrimSpace(info.Assignment)
	if sub == "" {
		sub = defaultAssignment
	}
	item := Item{
		ID:    folder,
		Kind:  KindCharacter,
		Name:  name,
		Sub:   sub,
		Stats: info.Stats,
		Tabs:  info.Tabs,
	}
	if item.Stats == nil {
		item.Stats = Stats{}
	}
	if item.Tabs == nil {
		item.Tabs = []Tab{}
	}
	if portrait := pickPortrait(folder, images); portrait != "" {
		item.Img = AssetURL(folder, portrait)
	}
	return item
}

func galleryItem(folder string, images []string) Item {
	gallery := make([]GalleryImage, 0, len(images))
	for _, image := range images {
		gallery = append(gallery, GalleryImage{Name: image, URL: AssetURL(folder, image)})
	}
	return Item{
		ID:            folder,
		Kind:          KindGallery,
		Name:          GalleryName(folder),
		Sub:           fmt.Sprintf("%d IMAGE(S) // EVIDENTIARY", len(images)),
		Img:           AssetURL(folder, images[0]),
		GalleryImages: gallery,
	}
}
