package chat

// RecordKind tags a knowledge record variant.
type RecordKind string

const (
	RecordFAQ     RecordKind = "faq"
	RecordProduct RecordKind = "product"
	RecordService RecordKind = "service"
	RecordPolicy  RecordKind = "policy"
)

// Record is a knowledge base entry. Each variant carries a primary text
// field (question/name/title) and a secondary one (answer/description/content);
// products additionally carry feature strings.
type Record interface {
	RecordID() string
	Kind() RecordKind
	// Primary is the record's headline field, shown as Name/Title in prompts.
	Primary() string
	// Secondary is the record's body field, shown as Details in prompts.
	Secondary() string

	searchFields() []string
}

type FAQRecord struct {
	ID       string
	Question string
	Answer   string
}

func (r FAQRecord) RecordID() string  { return r.ID }
func (r FAQRecord) Kind() RecordKind  { return RecordFAQ }
func (r FAQRecord) Primary() string   { return r.Question }
func (r FAQRecord) Secondary() string { return r.Answer }

func (r FAQRecord) searchFields() []string {
	return []string{r.Question, r.Answer}
}

type ProductRecord struct {
	ID          string
	Name        string
	Description string
	Price       string
	Features    []string
}

func (r ProductRecord) RecordID() string  { return r.ID }
func (r ProductRecord) Kind() RecordKind  { return RecordProduct }
func (r ProductRecord) Primary() string   { return r.Name }
func (r ProductRecord) Secondary() string { return r.Description }

func (r ProductRecord) searchFields() []string {
	fields := []string{r.Name, r.Description}
	return append(fields, r.Features...)
}

type ServiceRecord struct {
	ID          string
	Name        string
	Description string
	Details     string
}

func (r ServiceRecord) RecordID() string  { return r.ID }
func (r ServiceRecord) Kind() RecordKind  { return RecordService }
func (r ServiceRecord) Primary() string   { return r.Name }
func (r ServiceRecord) Secondary() string { return r.Description }

func (r ServiceRecord) searchFields() []string {
	return []string{r.Name, r.Description}
}

type PolicyRecord struct {
	ID      string
	Title   string
	Content string
}

func (r PolicyRecord) RecordID() string  { return r.ID }
func (r PolicyRecord) Kind() RecordKind  { return RecordPolicy }
func (r PolicyRecord) Primary() string   { return r.Title }
func (r PolicyRecord) Secondary() string { return r.Content }

func (r PolicyRecord) searchFields() []string {
	return []string{r.Title, r.Content}
}
