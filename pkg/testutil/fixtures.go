package testutil

// Sample job posts.
const (
	// ScamPostText matches "registration fee", "guaranteed income" and
	// "whatsapp only" for a score of 95.
	ScamPostText = "Pay the registration fee today. Guaranteed income every week. WhatsApp only."

	// LegitPostText carries only legitimacy signals and scores 0.
	LegitPostText = "Software Engineer at ABC Tech. Skills: Go, PostgreSQL. " +
		"Email: careers@abctech.lk. Office: World Trade Center, Colombo."

	// LocalScamPostText is a typical Sri Lankan data entry scam.
	LocalScamPostText = "URGENT HIRING! Data entry, copy paste work from home. " +
		"No experience needed. Earn Rs. 50,000 monthly. Contact 077 123 4567 WhatsApp only."
)
