package decide

// Hive/bee/apiary/wasp-family markers. MobileNet class names are matched by
// substring, so bare fragments cover plurals and compound labels.
var positiveKeywords = []string{
	"honeycomb",
	"bee",
	"apiary",
	"hive",
	"wasp",
	"hornet",
}

// Rejection markers: devices, humans, reflective artifacts and unrelated
// insects that the camera flow commonly produces (selfies, screens).
var negativeKeywords = []string{
	"cellular telephone",
	"hand-held computer",
	"mirror",
	"wig",
	"mask",
	"sunglasses",
	"sunglass",
	"monitor",
	"screen",
	"person",
	"groom",
	"jersey",
	"pajama",
	"ant",
	"fly",
	"spider",
	"cockroach",
}
