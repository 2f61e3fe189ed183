package enrich

import (
	"fmt"
	"strings"

	"dailybrief/internal/core"
	"dailybrief/internal/parser"
)

// classificationPromptTemplate asks the model for exactly one field per line
// so the response parser can extract them with a line-oriented grammar.
const classificationPromptTemplate = `请分析以下技术文章/项目，用中文输出以下信息：

标题：%s
来源：%s
描述：%s

分类说明：
- AI应用：可以直接运行的AI工具、开源项目、产品
- AI前沿：理论突破、论文、大厂(OpenAI/Google/Meta等)的技术进展
- 其他分类：Python、Java、Go、架构、前端等

请严格按以下格式输出（每行一个字段）：
分类：[从这些选项中选一个: %s, %s]
亮点：[3-6个字的核心亮点标签，如"开箱即用"、"性能翻倍"、"GPT替代品"]
摘要：[2-3句话总结核心内容，不超过80字]
`

// BuildPrompt renders the classification prompt for one article. The allowed
// category list is derived from the configured interest tags plus the
// generic fallback category.
func BuildPrompt(article core.Article, interestTags []string) string {
	return fmt.Sprintf(classificationPromptTemplate,
		article.Title,
		article.Source,
		article.Description,
		strings.Join(interestTags, "、"),
		parser.FallbackCategory,
	)
}
