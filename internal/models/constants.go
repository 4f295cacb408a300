package models

const (
	DefaultVectorDBPath = "data/vectorstores/{course}/{id}"
	DefaultPDFPath      = "data/courses/{course}/pdf/{id}.pdf"
	DefaultCollection   = "lesson"
	DefaultTopK         = 3
	ContextSeparator    = "\n\n"
	HelloMessage        = "Hello, World!"
)

// TemplateID names a fixed prompt template.
type TemplateID string

const (
	AnswerTemplateID  TemplateID = "answer"
	RewriteTemplateID TemplateID = "rewrite"
)

var (
	AnswerPromptTemplate = `
Bạn là một trợ lý học tập thông minh và đáng tin cậy. Hãy chỉ sử dụng thông tin được cung cấp trong phần **Tài liệu** bên dưới để trả lời câu hỏi.

Nếu không tìm thấy câu trả lời trong tài liệu, hãy trả lời: "Câu hỏi không thuộc chủ đề bài học!"

### Tài liệu:
{context}

### Câu hỏi:
{question}

### Trả lời (ngắn gọn và chính xác nhất có thể):
`

	RewritePromptTemplate = `
You are a teacher retelling a lesson to a student. Rewrite the lesson below in a {style} tone.
Keep every fact, definition and example from the lesson. Do not add new material and do not
mention that the text was rewritten. Answer in the same language as the lesson.

### Lesson:
{content}

### Rewritten lesson:
`
)

// Templates maps each operation to its template. Requests cannot override it.
var Templates = map[TemplateID]string{
	AnswerTemplateID:  AnswerPromptTemplate,
	RewriteTemplateID: RewritePromptTemplate,
}
