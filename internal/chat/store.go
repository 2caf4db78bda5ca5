package chat

// Store holds the static knowledge base. Records are loaded once and never
// mutated, so reads need no synchronization.
type Store struct {
	records []Record
}

// NewStore creates a Store with the built-in seed records.
func NewStore() *Store {
	return &Store{records: seedRecords()}
}

// NewStoreWith creates a Store over the given records, preserving order.
func NewStoreWith(records []Record) *Store {
	return &Store{records: records}
}

// All returns every record in store order.
func (s *Store) All() []Record {
	return s.records
}

func seedRecords() []Record {
	return []Record{
		FAQRecord{
			ID:       "faq_hours",
			Question: "What are your business hours?",
			Answer:   "We are open 9 AM to 5 PM, Monday to Friday.",
		},
		FAQRecord{
			ID:       "faq_password",
			Question: "How can I reset my password?",
			Answer:   "You can reset your password by clicking the 'Forgot Password' link on the login page.",
		},
		FAQRecord{
			ID:       "faq_contact",
			Question: "How can I contact support?",
			Answer:   "You can contact support via email at support@example.com or by calling us at 1-800-EXAMPLE.",
		},
		ProductRecord{
			ID:          "prod_widget",
			Name:        "SuperWidget",
			Description: "An amazing widget that does everything you need.",
			Price:       "$99.99",
			Features:    []string{"Feature A", "Feature B"},
		},
		ProductRecord{
			ID:          "prod_gadget",
			Name:        "MegaGadget",
			Description: "The latest and greatest gadget on the market.",
			Price:       "$199.99",
			Features:    []string{"Ultra fast", "Long battery life", "AI-powered"},
		},
		ServiceRecord{
			ID:          "serv_support",
			Name:        "Premium Support Plan",
			Description: "24/7 premium support for all your needs.",
			Details:     "Includes priority phone and email support, and a dedicated account manager.",
		},
		PolicyRecord{
			ID:      "pol_return",
			Title:   "Return Policy",
			Content: "Products can be returned within 30 days of purchase for a full refund, provided they are in original condition. Opened software is non-refundable.",
		},
	}
}
