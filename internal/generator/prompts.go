package generator

import (
	"fmt"
	"strings"

	"story-relay/internal/models"
)

const systemPrompt = `你是一个专业的故事创作助手，擅长根据用户提供的参数创作引人入胜的故事开头。

创作要求：
1. 根据给定的时间、地点、人物、事件、情绪氛围和类型创作故事开头
2. 场景设定明确，人物形象鲜明
3. 设置适当的悬念或冲突，为后续接龙留下发展空间
4. 语言流畅自然，风格与故事类型相符

请严格遵守字数要求，直接输出故事内容，不要附加说明。`

// buildUserPrompt перечисляет заданные параметры и требования жанра.
func buildUserPrompt(catalog *Catalog, params models.StoryParameters, genre string, length models.StoryLength) string {
	table, _ := catalog.Lookup(genre)

	var b strings.Builder
	fmt.Fprintf(&b, "请创作一个%s类型的故事开头，字数要求：%s。\n\n", table.Label, catalog.LengthRequirement(length))
	b.WriteString("故事参数：\n")
	if params.Time != "" {
		fmt.Fprintf(&b, "- 时间设定：%s\n", params.Time)
	}
	if params.Location != "" {
		fmt.Fprintf(&b, "- 地点设定：%s\n", params.Location)
	}
	if characters := nonBlank(params.Characters); len(characters) > 0 {
		fmt.Fprintf(&b, "- 主要人物：%s\n", strings.Join(characters, "、"))
	}
	if params.Action != "" {
		fmt.Fprintf(&b, "- 主要事件：%s\n", params.Action)
	}
	if params.Mood != "" {
		fmt.Fprintf(&b, "- 情绪氛围：%s\n", params.Mood)
	}
	if table.Guidance != "" {
		fmt.Fprintf(&b, "\n%s\n", table.Guidance)
	}
	b.WriteString("\n请基于以上参数创作故事开头，要求生动有趣，为后续接龙留下发展空间。")
	return b.String()
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
