package model

// All lists every table the gateway owns, in migration order
func All() []interface{} {
	return []interface{}{
		&AiConfig{},
		&Conversation{},
		&AdminProfile{},
		&SystemLog{},
	}
}
