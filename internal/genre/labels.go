package genre

// Labels is the fixed, ordered 87-entry genre table. Activation index i
// from the classifier model corresponds to Labels[i].
var Labels = [87]string{
	"60s", "70s", "80s", "90s", "acidjazz", "alternative", "alternativerock",
	"ambient", "atmospheric", "blues", "bluesrock", "bossanova", "breakbeat",
	"celtic", "chanson", "chillout", "choir", "classical", "classicrock",
	"club", "contemporary", "country", "dance", "darkambient", "darkwave",
	"deephouse", "disco", "downtempo", "drumnbass", "dub", "dubstep",
	"easylistening", "edm", "electronic", "electronica", "electropop",
	"ethno", "eurodance", "experimental", "folk", "funk", "fusion", "groove",
	"grunge", "hard", "hardrock", "hiphop", "house", "idm", "improvisation",
	"indie", "industrial", "instrumentalpop", "instrumentalrock", "jazz",
	"jazzfusion", "latin", "lounge", "medieval", "metal", "minimal",
	"newage", "newwave", "orchestral", "pop", "popfolk", "poprock",
	"postrock", "progressive", "psychedelic", "punkrock", "rap", "reggae",
	"rnb", "rock", "rocknroll", "singersongwriter", "soul", "soundtrack",
	"swing", "symphonic", "synthpop", "techno", "trance", "triphop",
	"world", "worldfusion",
}

// NumLabels is len(Labels), the exact length every activation vector must
// have.
const NumLabels = len(Labels)
