// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package a2ui

import "encoding/json"

// ComponentKind names a component type in the protocol catalog.
type ComponentKind string

const (
	KindColumn         ComponentKind = "Column"
	KindRow            ComponentKind = "Row"
	KindList           ComponentKind = "List"
	KindCard           ComponentKind = "Card"
	KindText           ComponentKind = "Text"
	KindImage          ComponentKind = "Image"
	KindIcon           ComponentKind = "Icon"
	KindDivider        ComponentKind = "Divider"
	KindButton         ComponentKind = "Button"
	KindTextField      ComponentKind = "TextField"
	KindCheckBox       ComponentKind = "CheckBox"
	KindSlider         ComponentKind = "Slider"
	KindMultipleChoice ComponentKind = "MultipleChoice"
	KindModal          ComponentKind = "Modal"
	KindTabs           ComponentKind = "Tabs"
)

// ComponentDefinition is one entry in a surface's adjacency list.
//
// Weight decodes leniently: a non-numeric value is dropped rather than
// failing the whole definition.
type ComponentDefinition struct {
	ID        string    `json:"id"`
	Weight    *float64  `json:"weight,omitempty"`
	Component Component `json:"component"`
}

func (d *ComponentDefinition) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Weight    json.RawMessage `json:"weight"`
		Component Component       `json:"component"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.ID = raw.ID
	d.Component = raw.Component
	d.Weight = nil
	if len(raw.Weight) > 0 {
		var f float64
		if err := json.Unmarshal(raw.Weight, &f); err == nil {
			d.Weight = &f
		}
	}
	return nil
}

// Component is the closed union of protocol component types. Exactly one
// field is non-nil; the wire key is the variant name verbatim.
type Component struct {
	Column         *ColumnComponent         `json:"Column,omitempty"`
	Row            *RowComponent            `json:"Row,omitempty"`
	List           *ListComponent           `json:"List,omitempty"`
	Card           *CardComponent           `json:"Card,omitempty"`
	Text           *TextComponent           `json:"Text,omitempty"`
	Image          *ImageComponent          `json:"Image,omitempty"`
	Icon           *IconComponent           `json:"Icon,omitempty"`
	Divider        *DividerComponent        `json:"Divider,omitempty"`
	Button         *ButtonComponent         `json:"Button,omitempty"`
	TextField      *TextFieldComponent      `json:"TextField,omitempty"`
	CheckBox       *CheckBoxComponent       `json:"CheckBox,omitempty"`
	Slider         *SliderComponent         `json:"Slider,omitempty"`
	MultipleChoice *MultipleChoiceComponent `json:"MultipleChoice,omitempty"`
	Modal          *ModalComponent          `json:"Modal,omitempty"`
	Tabs           *TabsComponent           `json:"Tabs,omitempty"`
}

// Kind returns the active variant's catalog name, or "" when no variant
// is set.
func (c Component) Kind() ComponentKind {
	switch {
	case c.Column != nil:
		return KindColumn
	case c.Row != nil:
		return KindRow
	case c.List != nil:
		return KindList
	case c.Card != nil:
		return KindCard
	case c.Text != nil:
		return KindText
	case c.Image != nil:
		return KindImage
	case c.Icon != nil:
		return KindIcon
	case c.Divider != nil:
		return KindDivider
	case c.Button != nil:
		return KindButton
	case c.TextField != nil:
		return KindTextField
	case c.CheckBox != nil:
		return KindCheckBox
	case c.Slider != nil:
		return KindSlider
	case c.MultipleChoice != nil:
		return KindMultipleChoice
	case c.Modal != nil:
		return KindModal
	case c.Tabs != nil:
		return KindTabs
	default:
		return ""
	}
}

// ChildrenRef references a component's children, either as an explicit
// ordered id list or as a template instantiated once per element of a bound
// array.
//
// Wire forms:
//
//	{"explicitList": ["header", "content"]}
//	{"template": {"componentId": "item-card", "dataBinding": "/items"}}
type ChildrenRef struct {
	ExplicitList []string
	Template     *TemplateRef
}

// TemplateRef binds a component definition to an array path. The component
// is instantiated per array element with a per-item scope of
// dataBinding/<index>.
type TemplateRef struct {
	ComponentID string `json:"componentId"`
	DataBinding string `json:"dataBinding"`
}

// IsTemplate reports whether the reference is template-based.
func (c ChildrenRef) IsTemplate() bool { return c.Template != nil }

func (c ChildrenRef) MarshalJSON() ([]byte, error) {
	if c.Template != nil {
		return json.Marshal(map[string]*TemplateRef{"template": c.Template})
	}
	list := c.ExplicitList
	if list == nil {
		list = []string{}
	}
	return json.Marshal(map[string][]string{"explicitList": list})
}

func (c *ChildrenRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExplicitList []string     `json:"explicitList"`
		Template     *TemplateRef `json:"template"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Template != nil {
		*c = ChildrenRef{Template: raw.Template}
		return nil
	}
	*c = ChildrenRef{ExplicitList: raw.ExplicitList}
	return nil
}

// Layout components.

// ColumnComponent lays out children vertically.
type ColumnComponent struct {
	Children     ChildrenRef  `json:"children"`
	Alignment    Alignment    `json:"alignment,omitempty"`
	Distribution Distribution `json:"distribution,omitempty"`
}

// RowComponent lays out children horizontally.
type RowComponent struct {
	Children     ChildrenRef  `json:"children"`
	Alignment    Alignment    `json:"alignment,omitempty"`
	Distribution Distribution `json:"distribution,omitempty"`
}

// ListComponent is a scrollable container, usually template-bound.
type ListComponent struct {
	Children  ChildrenRef   `json:"children"`
	Direction ListDirection `json:"direction,omitempty"`
}

// CardComponent wraps a single child with optional elevation.
type CardComponent struct {
	Child     string `json:"child"`
	Elevation *int   `json:"elevation,omitempty"`
}

// Display components.

// TextComponent displays literal or data-bound text.
type TextComponent struct {
	Text      StringValue   `json:"text"`
	UsageHint TextUsageHint `json:"usageHint,omitempty"`
}

// ImageComponent displays an image by URL.
type ImageComponent struct {
	URL       StringValue    `json:"url"`
	Fit       ImageFit       `json:"fit,omitempty"`
	UsageHint ImageUsageHint `json:"usageHint,omitempty"`
}

// IconComponent displays a named icon.
type IconComponent struct {
	Name StringValue `json:"name"`
	Size *float64    `json:"size,omitempty"`
}

// DividerComponent is a visual separator.
type DividerComponent struct {
	Orientation Orientation `json:"orientation,omitempty"`
}

// Interactive components.

// ButtonComponent triggers an action when activated. Its visible content
// is the referenced child component.
type ButtonComponent struct {
	Child   string            `json:"child"`
	Primary *bool             `json:"primary,omitempty"`
	Action  *ActionDefinition `json:"action,omitempty"`
}

// TextFieldComponent is a text input with two-way binding through Text.
type TextFieldComponent struct {
	Text        StringValue   `json:"text"`
	Label       *StringValue  `json:"label,omitempty"`
	Placeholder *StringValue  `json:"placeholder,omitempty"`
	InputType   TextInputType `json:"inputType,omitempty"`
}

// CheckBoxComponent is a boolean toggle with two-way binding through Value.
type CheckBoxComponent struct {
	Value BooleanValue `json:"value"`
	Label *StringValue `json:"label,omitempty"`
}

// SliderComponent is a numeric input with two-way binding through Value.
type SliderComponent struct {
	Value NumberValue `json:"value"`
	Min   *float64    `json:"min,omitempty"`
	Max   *float64    `json:"max,omitempty"`
	Step  *float64    `json:"step,omitempty"`
}

// MultipleChoiceComponent selects among a fixed option set.
type MultipleChoiceComponent struct {
	Value       StringValue    `json:"value"`
	Options     []ChoiceOption `json:"options"`
	MultiSelect *bool          `json:"multiSelect,omitempty"`
}

// ChoiceOption is one selectable option.
type ChoiceOption struct {
	Value string      `json:"value"`
	Label StringValue `json:"label"`
}

// Container components.

// ModalComponent is an overlay whose visibility is data-bound.
type ModalComponent struct {
	Visible  BooleanValue `json:"visible"`
	Children ChildrenRef  `json:"children"`
}

// TabsComponent is a tabbed container.
type TabsComponent struct {
	Tabs     []TabDefinition `json:"tabs"`
	Selected *StringValue    `json:"selected,omitempty"`
}

// TabDefinition is one tab: its id, label, and content component.
type TabDefinition struct {
	ID      string      `json:"id"`
	Label   StringValue `json:"label"`
	Content string      `json:"content"`
}

// Enums. All are plain string types so unrecognized wire values survive a
// decode/encode round trip instead of failing it.

// Alignment is cross-axis alignment for Row/Column.
type Alignment string

const (
	AlignStart   Alignment = "start"
	AlignCenter  Alignment = "center"
	AlignEnd     Alignment = "end"
	AlignStretch Alignment = "stretch"
)

// Distribution is main-axis distribution for Row/Column.
type Distribution string

const (
	DistributeStart        Distribution = "start"
	DistributeCenter       Distribution = "center"
	DistributeEnd          Distribution = "end"
	DistributeSpaceBetween Distribution = "spaceBetween"
	DistributeSpaceAround  Distribution = "spaceAround"
	DistributeSpaceEvenly  Distribution = "spaceEvenly"
)

// ListDirection is a List's scroll direction.
type ListDirection string

const (
	ListVertical   ListDirection = "vertical"
	ListHorizontal ListDirection = "horizontal"
)

// TextUsageHint hints at text styling.
type TextUsageHint string

const (
	TextH1      TextUsageHint = "h1"
	TextH2      TextUsageHint = "h2"
	TextH3      TextUsageHint = "h3"
	TextH4      TextUsageHint = "h4"
	TextH5      TextUsageHint = "h5"
	TextBody    TextUsageHint = "body"
	TextCaption TextUsageHint = "caption"
	TextCode    TextUsageHint = "code"
)

// ImageFit is how an image fills its bounds.
type ImageFit string

const (
	FitContain   ImageFit = "contain"
	FitCover     ImageFit = "cover"
	FitFill      ImageFit = "fill"
	FitNone      ImageFit = "none"
	FitScaleDown ImageFit = "scaleDown"
)

// ImageUsageHint hints at image sizing.
type ImageUsageHint string

const (
	ImageIcon          ImageUsageHint = "icon"
	ImageAvatar        ImageUsageHint = "avatar"
	ImageSmallFeature  ImageUsageHint = "smallFeature"
	ImageMediumFeature ImageUsageHint = "mediumFeature"
	ImageLargeFeature  ImageUsageHint = "largeFeature"
	ImageHeader        ImageUsageHint = "header"
)

// Orientation is a divider's orientation.
type Orientation string

const (
	OrientHorizontal Orientation = "horizontal"
	OrientVertical   Orientation = "vertical"
)

// TextInputType is a text field's input mode.
type TextInputType string

const (
	InputText     TextInputType = "text"
	InputEmail    TextInputType = "email"
	InputPassword TextInputType = "password"
	InputNumber   TextInputType = "number"
	InputTel      TextInputType = "tel"
	InputURL      TextInputType = "url"
)

// ActionDefinition names an action and lists the context values sent with
// it when triggered.
type ActionDefinition struct {
	Name    string              `json:"name"`
	Context []ActionContextItem `json:"context,omitempty"`
}

// ActionContextItem is one key/value pair of action context. Agents
// sometimes emit malformed items such as a bare {"path": "/x"}, so both
// fields default instead of failing the decode.
type ActionContextItem struct {
	Key   string      `json:"key"`
	Value ActionValue `json:"value"`
}

// ActionValue is the untagged union of bindable context value types.
// Exactly one of String, Number, Boolean is non-nil; the zero value decodes
// and resolves as an empty literal string.
type ActionValue struct {
	String  *StringValue
	Number  *NumberValue
	Boolean *BooleanValue
}

func (v ActionValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.String != nil:
		return json.Marshal(v.String)
	case v.Number != nil:
		return json.Marshal(v.Number)
	case v.Boolean != nil:
		return json.Marshal(v.Boolean)
	default:
		return StringLiteral("").MarshalJSON()
	}
}

func (v *ActionValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		LiteralString  *string  `json:"literalString"`
		LiteralNumber  *float64 `json:"literalNumber"`
		LiteralBoolean *bool    `json:"literalBoolean"`
		Path           string   `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.LiteralString != nil:
		*v = ActionValue{String: &StringValue{Literal: raw.LiteralString}}
	case raw.LiteralNumber != nil:
		*v = ActionValue{Number: &NumberValue{Literal: raw.LiteralNumber}}
	case raw.LiteralBoolean != nil:
		*v = ActionValue{Boolean: &BooleanValue{Literal: raw.LiteralBoolean}}
	default:
		*v = ActionValue{String: &StringValue{Path: raw.Path}}
	}
	return nil
}
