package model

// LanguageMeta 编程语言的静态元数据，进程启动时定义，不可变
type LanguageMeta struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Extension  string `json:"extension"`
	Difficulty string `json:"difficulty"`
}

// DefaultLanguageID 未知语言时回退使用的语言
const DefaultLanguageID = "python"

var languageCatalog = []LanguageMeta{
	{ID: "python", Name: "Python", Icon: "🐍", Extension: ".py", Difficulty: "Beginner-friendly"},
	{ID: "javascript", Name: "JavaScript", Icon: "🟨", Extension: ".js", Difficulty: "Beginner-friendly"},
	{ID: "typescript", Name: "TypeScript", Icon: "🔷", Extension: ".ts", Difficulty: "Intermediate"},
	{ID: "java", Name: "Java", Icon: "☕", Extension: ".java", Difficulty: "Intermediate"},
	{ID: "kotlin", Name: "Kotlin", Icon: "🎯", Extension: ".kt", Difficulty: "Intermediate"},
	{ID: "rust", Name: "Rust", Icon: "🦀", Extension: ".rs", Difficulty: "Advanced"},
	{ID: "golang", Name: "Go", Icon: "🐹", Extension: ".go", Difficulty: "Intermediate"},
	{ID: "csharp", Name: "C#", Icon: "💜", Extension: ".cs", Difficulty: "Intermediate"},
	{ID: "cpp", Name: "C++", Icon: "⚡", Extension: ".cpp", Difficulty: "Advanced"},
	{ID: "swift", Name: "Swift", Icon: "🦉", Extension: ".swift", Difficulty: "Intermediate"},
	{ID: "php", Name: "PHP", Icon: "🐘", Extension: ".php", Difficulty: "Beginner-friendly"},
	{ID: "ruby", Name: "Ruby", Icon: "💎", Extension: ".rb", Difficulty: "Beginner-friendly"},
}

// Languages 返回支持的语言列表（目录顺序）
func Languages() []LanguageMeta {
	out := make([]LanguageMeta, len(languageCatalog))
	copy(out, languageCatalog)
	return out
}

// LanguageByID 按 ID 查找语言元数据
func LanguageByID(id string) (LanguageMeta, bool) {
	for _, l := range languageCatalog {
		if l.ID == id {
			return l, true
		}
	}
	return LanguageMeta{}, false
}

// LanguageOrDefault 按 ID 查找，未知语言回退到 python
func LanguageOrDefault(id string) LanguageMeta {
	if l, ok := LanguageByID(id); ok {
		return l
	}
	l, _ := LanguageByID(DefaultLanguageID)
	return l
}
