package constant

const (
	// Upload form
	UploadNoFileSelectedMessage = "Please select a PDF file to upload."
	UploadFailedMessage         = "Failed to upload PDF."

	// Chat panel
	ChatNoAnswerMessage    = "No answer found."
	ChatFetchErrorMessage  = "Error fetching answer."
	ServerErrorTryAgain    = "Server error. Try again."
	ChatEmptyTranscriptMsg = "Ask any question about the PDF you uploaded!"
	ChatTypingMessage      = "Assistant is typing..."

	// Page copy
	AppTitle    = "Smart PDF Assistant"
	AppTagline  = "Upload a PDF and ask questions about it instantly!"
	UploadLabel = "Upload PDF"
	UploadBusy  = "Uploading..."

	// Log modules
	LogModuleUpload  = "Upload"
	LogModuleChat    = "Chat"
	LogModuleViewer  = "Viewer"
	LogModuleEvents  = "Events"
	LogModuleHub     = "Hub"
	LogModuleStartup = "Startup"
)
