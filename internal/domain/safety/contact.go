package safety

// DefaultContact is the placeholder emergency contact used until the user sets one.
const DefaultContact = "1234567890"

// EmergencyMessage is the fixed body of the panic text message.
const EmergencyMessage = "Emergency! I need help."

// Settings is the persisted user configuration.
type Settings struct {
	// EmergencyContact is the phone number the panic message is addressed to.
	EmergencyContact string
}

// DefaultSettings returns settings with the placeholder contact.
func DefaultSettings() *Settings {
	return &Settings{
		EmergencyContact: DefaultContact,
	}
}
