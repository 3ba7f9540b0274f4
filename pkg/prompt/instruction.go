package prompt

import (
	"strings"

	"portfolio-ai-be/internal/entity"
)

// DefaultLanguage is the language the instructions are written in
const DefaultLanguage = "en"

const (
	instructionPreamble = "You are a friendly AI assistant embedded in a personal portfolio website. " +
		"You answer visitors' questions on behalf of the portfolio owner using the profile below."

	instructionGuidelines = "Guidelines:\n" +
		"- Keep answers concise, accurate and professional.\n" +
		"- Only share information contained in the profile; say so when you do not know.\n" +
		"- Encourage visitors to get in touch for collaboration or job opportunities."

	// FallbackInstruction is used when no profile is available
	FallbackInstruction = "You are a helpful AI assistant for a personal portfolio website. " +
		"Answer visitors' questions politely and concisely, and suggest using the contact page for anything you cannot answer."

	languageDirectivePrefix = "Always respond in the language with ISO 639-1 code: "
)

// InstructionBuilder composes the system instruction for a chat turn
type InstructionBuilder struct {
	config   *entity.AiConfig
	profile  *entity.AdminProfile
	language string
}

// NewInstructionBuilder creates a builder; profile may be nil
func NewInstructionBuilder(config *entity.AiConfig, profile *entity.AdminProfile, language string) *InstructionBuilder {
	return &InstructionBuilder{
		config:   config,
		profile:  profile,
		language: language,
	}
}

// BuildInstruction is the functional form of InstructionBuilder.Build
func BuildInstruction(config *entity.AiConfig, profile *entity.AdminProfile, language string) string {
	return NewInstructionBuilder(config, profile, language).Build()
}

// UsesCustomInstruction reports whether the custom instruction takes precedence over the profile
func UsesCustomInstruction(config *entity.AiConfig) bool {
	return config != nil &&
		config.UseCustomInstruction &&
		config.CustomInstruction != nil &&
		strings.TrimSpace(*config.CustomInstruction) != ""
}

// Build is deterministic: the same config, profile and language give the same string.
func (b *InstructionBuilder) Build() string {
	var instruction strings.Builder

	switch {
	case UsesCustomInstruction(b.config):
		instruction.WriteString(*b.config.CustomInstruction)
	case b.profile == nil:
		instruction.WriteString(FallbackInstruction)
	default:
		b.writeProfile(&instruction)
	}

	b.writeLanguageDirective(&instruction)

	return instruction.String()
}

func (b *InstructionBuilder) writeProfile(instruction *strings.Builder) {
	p := b.profile

	instruction.WriteString(instructionPreamble)
	instruction.WriteString("\n\n")

	writeField(instruction, "Name", p.Name)
	writeField(instruction, "Position", p.Position)
	writeField(instruction, "Location", p.Location)
	writeField(instruction, "About", p.Introduction)
	writeField(instruction, "Education", p.Education)
	writeField(instruction, "Skills", joinSkills(p.Skills))
	writeField(instruction, "Contact email", p.Email)

	instruction.WriteString("\n")
	instruction.WriteString(instructionGuidelines)
}

func (b *InstructionBuilder) writeLanguageDirective(instruction *strings.Builder) {
	if b.language == "" || b.language == DefaultLanguage {
		return
	}
	instruction.WriteString("\n\n")
	instruction.WriteString(languageDirectivePrefix)
	instruction.WriteString(b.language)
}

func writeField(instruction *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	instruction.WriteString(label)
	instruction.WriteString(": ")
	instruction.WriteString(value)
	instruction.WriteString("\n")
}

func joinSkills(skills []string) string {
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, ", ")
}
