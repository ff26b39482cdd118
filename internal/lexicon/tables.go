package lexicon

// directionalTable maps compass names to their canonical codes.
var directionalTable = map[string]string{
	"north":     "N",
	"northeast": "NE",
	"northwest": "NW",
	"south":     "S",
	"southeast": "SE",
	"southwest": "SW",
	"east":      "E",
	"west":      "W",
}

// streetTypeTable maps every recognized street-type spelling to its
// Canada Post style abbreviation. Values are lowercase; the normalizer
// title-cases them on output.
var streetTypeTable = map[string]string{
	"abbey":      "abbey",
	"acres":      "acres",
	"alley":      "alley",
	"allee":      "alley",
	"aly":        "alley",
	"annex":      "anx",
	"anx":        "anx",
	"arcade":     "arc",
	"arc":        "arc",
	"avenue":     "ave",
	"ave":        "ave",
	"aven":       "ave",
	"avenu":      "ave",
	"av":         "ave",
	"bay":        "bay",
	"beach":      "beach",
	"bend":       "bend",
	"boulevard":  "blvd",
	"blvd":       "blvd",
	"boul":       "blvd",
	"boulv":      "blvd",
	"bypass":     "bypass",
	"by-pass":    "bypass",
	"byway":      "byway",
	"campus":     "campus",
	"cape":       "cape",
	"centre":     "ctr",
	"center":     "ctr",
	"ctr":        "ctr",
	"cntr":       "ctr",
	"chase":      "chase",
	"circle":     "cir",
	"cir":        "cir",
	"circl":      "cir",
	"crcle":      "cir",
	"circuit":    "circt",
	"circt":      "circt",
	"close":      "close",
	"common":     "common",
	"concession": "conc",
	"conc":       "conc",
	"corners":    "crnrs",
	"crnrs":      "crnrs",
	"court":      "crt",
	"crt":        "crt",
	"ct":         "crt",
	"cove":       "cove",
	"crescent":   "cres",
	"cres":       "cres",
	"crsent":     "cres",
	"crsnt":      "cres",
	"crossing":   "cross",
	"cross":      "cross",
	"xing":       "cross",
	"cul-de-sac": "cds",
	"cds":        "cds",
	"culdesac":   "cds",
	"dale":       "dale",
	"dell":       "dell",
	"diversion":  "divers",
	"divers":     "divers",
	"downs":      "downs",
	"drive":      "dr",
	"dr":         "dr",
	"driv":       "dr",
	"drv":        "dr",
	"end":        "end",
	"esplanade":  "espl",
	"espl":       "espl",
	"estates":    "estate",
	"estate":     "estate",
	"expressway": "expy",
	"expy":       "expy",
	"expwy":      "expy",
	"exp":        "expy",
	"extension":  "exten",
	"exten":      "exten",
	"ext":        "exten",
	"farm":       "farm",
	"field":      "field",
	"forest":     "forest",
	"freeway":    "fwy",
	"fwy":        "fwy",
	"frwy":       "fwy",
	"front":      "front",
	"gardens":    "gdns",
	"garden":     "gdns",
	"gdns":       "gdns",
	"gate":       "gate",
	"glade":      "glade",
	"glen":       "glen",
	"green":      "green",
	"grn":        "green",
	"grounds":    "grnds",
	"grnds":      "grnds",
	"grove":      "grove",
	"grv":        "grove",
	"harbour":    "harbr",
	"harbor":     "harbr",
	"harbr":      "harbr",
	"heath":      "heath",
	"heights":    "hts",
	"hts":        "hts",
	"ht":         "hts",
	"highlands":  "hghlds",
	"hghlds":     "hghlds",
	"highway":    "hwy",
	"hwy":        "hwy",
	"hiway":      "hwy",
	"hiwy":       "hwy",
	"highwy":     "hwy",
	"hill":       "hill",
	"hollow":     "hollow",
	"inlet":      "inlet",
	"island":     "island",
	"isle":       "island",
	"key":        "key",
	"knoll":      "knoll",
	"landing":    "landng",
	"landng":     "landng",
	"lndg":       "landng",
	"lane":       "lane",
	"ln":         "lane",
	"limits":     "lmts",
	"lmts":       "lmts",
	"line":       "line",
	"link":       "link",
	"lookout":    "lkout",
	"lkout":      "lkout",
	"loop":       "loop",
	"mall":       "mall",
	"manor":      "manor",
	"maze":       "maze",
	"meadow":     "meadow",
	"mews":       "mews",
	"moor":       "moor",
	"mount":      "mount",
	"mountain":   "mtn",
	"mtn":        "mtn",
	"orchard":    "orch",
	"orch":       "orch",
	"parade":     "parade",
	"park":       "pk",
	"pk":         "pk",
	"parkway":    "pky",
	"pky":        "pky",
	"pkwy":       "pky",
	"pkway":      "pky",
	"passage":    "pass",
	"pass":       "pass",
	"path":       "path",
	"pathway":    "ptway",
	"ptway":      "ptway",
	"pines":      "pines",
	"place":      "pl",
	"pl":         "pl",
	"plateau":    "plat",
	"plat":       "plat",
	"plaza":      "plaza",
	"plz":        "plaza",
	"point":      "pt",
	"pt":         "pt",
	"pointe":     "pt",
	"port":       "port",
	"private":    "pvt",
	"pvt":        "pvt",
	"promenade":  "prom",
	"prom":       "prom",
	"quay":       "quay",
	"ramp":       "ramp",
	"range":      "rg",
	"rg":         "rg",
	"ridge":      "ridge",
	"rdg":        "ridge",
	"rise":       "rise",
	"road":       "rd",
	"rd":         "rd",
	"route":      "rte",
	"rte":        "rte",
	"row":        "row",
	"run":        "run",
	"square":     "sq",
	"sq":         "sq",
	"sqr":        "sq",
	"street":     "st",
	"st":         "st",
	"str":        "st",
	"strt":       "st",
	"subdivision": "subdiv",
	"subdiv":     "subdiv",
	"terrace":    "terr",
	"terr":       "terr",
	"ter":        "terr",
	"thicket":    "thick",
	"thick":      "thick",
	"towers":     "towers",
	"townline":   "tline",
	"tline":      "tline",
	"trail":      "trail",
	"trl":        "trail",
	"turnabout":  "trnabt",
	"trnabt":     "trnabt",
	"vale":       "vale",
	"via":        "via",
	"view":       "view",
	"vw":         "view",
	"village":    "villge",
	"villge":     "villge",
	"villas":     "villas",
	"vista":      "vista",
	"walk":       "walk",
	"way":        "way",
	"wy":         "way",
	"wharf":      "wharf",
	"wood":       "wood",
	"wynd":       "wynd",
}

// provinceTable maps province and territory spellings to their two-letter
// codes. Historical quirk kept on purpose: the full name "quebec" maps to
// the older "PQ" code while the "pq" and "que" aliases map to "QC".
var provinceTable = map[string]string{
	"alberta":                   "AB",
	"alta":                      "AB",
	"alb":                       "AB",
	"british columbia":          "BC",
	"manitoba":                  "MB",
	"man":                       "MB",
	"new brunswick":             "NB",
	"newfoundland":              "NL",
	"newfoundland and labrador": "NL",
	"nfld":                      "NL",
	"nfld and labrador":         "NL",
	"northwest territories":     "NT",
	"nwt":                       "NT",
	"nova scotia":               "NS",
	"nunavut":                   "NU",
	"ontario":                   "ON",
	"ont":                       "ON",
	"prince edward island":      "PE",
	"pei":                       "PE",
	"quebec":                    "PQ",
	"pq":                        "QC",
	"que":                       "QC",
	"saskatchewan":              "SK",
	"sask":                      "SK",
	"yukon":                     "YT",
	"yukon territory":           "YT",
}
