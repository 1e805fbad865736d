package constant

// Main menu escape words. Matched against the whole lowercased message,
// not substrings, so "menu options please" does not reset the session.
var MenuCommands = []string{"main menu", "menu", "home", "ホーム", "メインメニュー"}

// MenuButtons is the home button row sent with every menu reset.
var MenuButtons = []string{"Purchase Laptop", "Order Status", "Return/Cancel", "Warranty", "Technical Support"}

// Brands known to the catalog. Lowercase; lookups lowercase the message first.
var KnownBrands = []string{
	"acer", "hp", "lenovo", "dell", "apple", "asus", "infinix",
	"msi", "realme", "redmi", "gigabyte", "samsung", "avita", "redmibook",
}

// Words that pull a message into the purchase flow even when the
// understood intent says otherwise.
var PurchaseKeywords = []string{"laptop", "buy", "purchase", "computer"}

// Comparison triggers for the structured comparison handler.
var ComparisonKeywords = []string{"compare", "comparison", "vs", "versus", "difference between"}

// Color words recognized in follow-up questions about displayed products.
var ColorKeywords = []string{"color", "colour", "blue", "red", "black", "silver", "gray", "white"}

// ExtractableColors are the colors pulled out of a color inquiry.
var ExtractableColors = []string{"blue", "red", "black", "silver", "gray", "white", "gold", "pink", "green"}

// Affirmative words for transaction confirmation.
var ConfirmationWords = []string{"yes", "confirm", "proceed", "ok", "okay", "yeah", "yep", "sure"}

// Affirmative words for the warranty policy acknowledgement step.
var WarrantyAckWords = []string{"yes", "yeah", "yep", "sure", "ok", "okay", "proceed", "confirm", "continue", "alright"}

// Affirmative words for accepting the human handoff offer.
var EscalationAcceptWords = []string{"yes", "yeah", "yep", "sure", "ok", "okay", "connect", "agent", "human"}

// Warranty policy inquiry vs claim disambiguation.
var WarrantyPolicyKeywords = []string{
	"warranty policy", "warranty information", "warranty terms",
	"warranty coverage", "what is covered", "warranty details",
	"policy", "policies", "terms and conditions", "what is the warranty",
	"how does warranty work", "warranty period",
}

var WarrantyClaimKeywords = []string{
	"warranty claim", "file warranty", "make warranty", "request warranty",
	"warranty request", "need warranty", "want warranty",
}

// Claim phrasings that trigger the warranty workflow from anywhere.
var WarrantyClaimTriggers = []string{"warranty claim", "warranty request", "file warranty", "make warranty"}

// Phrasings that skip structured handling and go straight to the
// generic assistant.
var GeneralChatPatterns = []string{
	"is this.*available in", "how do i track", "can i return",
	"what.*warranty", "how.*return", "where.*track",
	"do you have", "when will", "how long", "what is",
	"tell me about", "explain", "help with",
}

var ComplexQuestionIndicators = []string{
	"what is the difference", "how does", "why should", "tell me about",
	"explain", "pros and cons", "advantages and disadvantages",
}

// Intent names produced by language understanding.
const (
	IntentProductInquiry      = "product_inquiry"
	IntentSpecificProduct     = "specific_product"
	IntentProductComparison   = "product_comparison"
	IntentOrderStatus         = "order_status"
	IntentOrderTracking       = "order_tracking"
	IntentReturnRequest       = "return_request"
	IntentCancellationRequest = "cancellation_request"
	IntentWarrantyClaim       = "warranty_claim"
	IntentWarrantyPolicy      = "warranty_policy"
	IntentTechnicalSupport    = "technical_support"
	IntentColorInquiry        = "color_inquiry"
	IntentBudgetInquiry       = "budget_inquiry"
	IntentFeatureInquiry      = "feature_inquiry"
	IntentGreeting            = "greeting"
	IntentGoodbye             = "goodbye"
	IntentGeneralQuestion     = "general_question"
	IntentMainMenu            = "main_menu"
	IntentEscalationOffer     = "escalation_offer"
	IntentEscalationSuccess   = "escalation_success"
	IntentEscalationFailed    = "escalation_failed"
	IntentUnknown             = "unknown"
)

// Display types the frontend renders specially.
const (
	DisplayProductGrid     = "product_grid"
	DisplayOrderGrid       = "order_grid"
	DisplayTrackingDetails = "tracking_details"
	DisplayPolicyView      = "policy_view"
	DisplayComparisonView  = "comparison_view"
)

// Order statuses as stored on orders. Matching is case-insensitive.
const (
	OrderStatusDelivered  = "delivered"
	OrderStatusShipped    = "shipped"
	OrderStatusProcessing = "processing"
	OrderStatusConfirmed  = "confirmed"
)

// WarrantyPolicy is the published laptop warranty, rendered as a
// numbered list in the policy view.
var WarrantyPolicyCompany = "ShopEZ"
var WarrantyPolicyType = "Laptop Warranty"
var WarrantyPolicyLines = []string{
	"All ShopEZ laptops come with a 1-year warranty from the date of purchase.",
	"The warranty covers manufacturing defects in materials and workmanship.",
	"It does not cover damage due to accidents, misuse, unauthorized repairs, or normal wear and tear.",
	"Customers must provide a valid purchase invoice for warranty claims.",
	"ShopEZ reserves the right to repair, replace, or refund the product at its discretion.",
}
