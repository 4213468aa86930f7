package pattern

// Built-in lexical tables. Load merges YAML overrides on top of these.

// governmentTitles are titles that precede a surname in attributions.
// Abbreviated forms are listed so "Sen. Smith" resolves like "Senator Smith".
var governmentTitles = []string{
	"Lieutenant Governor", "Lt. Governor", "Lt. Gov.", "Governor", "Gov.",
	"Senator", "Sen.", "State Senator", "Representative", "Rep.", "State Representative",
	"Congressman", "Congresswoman", "Congressmember", "Delegate", "Del.",
	"Mayor", "Deputy Mayor", "Vice Mayor", "Councilmember", "Council Member", "Councilman", "Councilwoman",
	"Attorney General", "Secretary of State", "Secretary", "Commissioner", "Supervisor",
	"Speaker", "Majority Leader", "Minority Leader", "Whip", "Chairman", "Chairwoman", "Chair",
	"President", "Vice President", "Ambassador", "Sheriff", "Treasurer", "Comptroller", "Auditor",
	"Judge", "Justice", "Chief Justice", "Superintendent", "Chancellor", "Alderman", "Alderwoman",
	"Assemblyman", "Assemblywoman", "Assemblymember", "Administrator", "Director", "Chief",
	"General", "Admiral", "Colonel", "Captain", "Sergeant", "Officer", "Detective",
}

// honorificTitles are courtesy titles
var honorificTitles = []string{
	"Dr.", "Mr.", "Mrs.", "Ms.", "Mx.", "Prof.", "Professor", "Rev.", "Reverend", "Hon.", "Honorable",
	"Sir", "Dame", "Rabbi", "Father", "Pastor", "Bishop",
}

// corporateTitles appear in "Acme Corp CEO Jane Doe" and "Jane Doe, CEO of Acme" forms
var corporateTitles = []string{
	"Chief Executive Officer", "Chief Operating Officer", "Chief Financial Officer",
	"Chief Technology Officer", "Chief Marketing Officer", "Chief Product Officer",
	"Executive Director", "Managing Director", "Managing Partner", "General Manager",
	"Senior Vice President", "Executive Vice President", "Vice President",
	"Co-Founder", "Cofounder", "Founder", "CEO", "COO", "CFO", "CTO", "CMO", "CPO", "CIO",
	"President", "Chairman", "Chairwoman", "Chair", "Partner", "Principal", "Owner",
	"Head", "Spokesperson", "Spokesman", "Spokeswoman", "Director", "Manager",
}

// stateScopedTitles take "of <State>" from the dateline
var stateScopedTitles = []string{
	"Lieutenant Governor", "Lt. Governor", "Lt. Gov.", "Governor", "Gov.",
	"Attorney General", "Secretary of State", "State Senator", "State Representative",
}

// cityScopedTitles take "of <City>" from the dateline
var cityScopedTitles = []string{
	"Mayor", "Deputy Mayor", "Vice Mayor",
}

// titleExpansions normalise abbreviated titles
var titleExpansions = map[string]string{
	"Lt. Gov.":       "Lieutenant Governor",
	"Lt. Governor":   "Lieutenant Governor",
	"Gov.":           "Governor",
	"Sen.":           "Senator",
	"Rep.":           "Representative",
	"Del.":           "Delegate",
	"Prof.":          "Professor",
	"Rev.":           "Reverend",
	"Hon.":           "Honorable",
	"Cofounder":      "Co-Founder",
	"Council Member": "Councilmember",
}

// attributionVerbs introduce or follow a speaker
var attributionVerbs = []string{
	"said", "says", "stated", "states", "added", "adds", "continued", "continues",
	"noted", "notes", "explained", "explains", "remarked", "commented", "emphasized",
	"emphasised", "declared", "observed", "concluded", "shared", "told", "wrote",
	"announced", "asserted", "stressed", "argued", "acknowledged", "recalled",
	"urged", "warned", "insisted", "affirmed", "highlighted", "pointed out",
	"went on to say", "responded", "replied", "reflected", "expressed",
}

// announcementVerbs mark headline-like lines
var announcementVerbs = []string{
	"announces", "announced", "launches", "launched", "unveils", "unveiled",
	"introduces", "introduced", "celebrates", "releases", "released", "signs", "signed",
	"awards", "awarded", "names", "named", "appoints", "appointed", "expands", "opens",
	"secures", "secured", "wins", "receives", "partners", "joins", "hosts", "calls",
	"urges", "applauds", "statement", "reaches", "approves", "passes", "votes",
	"files", "issues", "delivers", "commits", "invests", "reports", "statement on",
}

// institutionalWords never start or end a personal name
var institutionalWords = []string{
	"Department", "Office", "Agency", "Administration", "Committee", "Commission",
	"Council", "Board", "Bureau", "Authority", "Association", "Foundation", "Institute",
	"University", "College", "School", "Company", "Corporation", "Corp", "Inc", "LLC",
	"Ltd", "Group", "Coalition", "Campaign", "Senate", "House", "Congress", "Assembly",
	"Government", "State", "County", "City", "Town", "Village", "Republic", "Party",
	"Democrats", "Republicans", "Center", "Centre", "Hospital", "Police", "Court",
	"Federal", "National", "United", "States", "America", "American", "News", "Press",
	"Release", "Immediate", "Contact", "Media", "Street", "Avenue", "Road",
	"January", "February", "March", "April", "May", "June", "July", "August",
	"September", "October", "November", "December",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// rolePhrases are generic role references that are not speakers in their own right
var rolePhrases = []string{
	"The Governor", "The Mayor", "The Senator", "The President", "The Secretary",
	"The Congressman", "The Congresswoman", "The Representative", "The Department",
	"The Company", "The Campaign", "The Office", "The Administration", "The Committee",
	"The Chair", "The Chairman", "The CEO", "The Board", "Officials", "Organizers",
	"Spokesperson", "A spokesperson", "A spokesman", "A spokeswoman", "Sources",
}

// leadingFunctionWords are capitalised only because they start a sentence
var leadingFunctionWords = []string{
	"The", "This", "That", "These", "Those", "A", "An", "In", "On", "At", "For",
	"With", "From", "As", "And", "But", "Or", "If", "When", "While", "After",
	"Before", "During", "Today", "Yesterday", "Tomorrow", "Earlier", "Later",
	"Additionally", "Furthermore", "Meanwhile", "However", "Moreover", "Also",
	"It", "We", "Our", "Their", "His", "Her", "Its", "They", "He", "She", "I",
	"Last", "Next", "Each", "Every", "Both", "All", "Many", "Some", "Most",
}

// pronouns that can stand in for a speaker
var pronouns = []string{"he", "she", "they"}

// topicShiftConnectives start a new paragraph in sentence grouping
var topicShiftConnectives = []string{
	"Additionally", "Furthermore", "Meanwhile", "However", "Moreover", "In addition",
	"Separately", "Finally", "Also,", "Beyond that", "Elsewhere", "Looking ahead",
	"At the same time", "In other news", "Previously", "Earlier this",
}

// states maps postal codes and AP abbreviations to full state names
var states = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District of Columbia",

	// AP style
	"Ala.": "Alabama", "Ariz.": "Arizona", "Ark.": "Arkansas", "Calif.": "California",
	"Colo.": "Colorado", "Conn.": "Connecticut", "Del.": "Delaware", "Fla.": "Florida",
	"Ga.": "Georgia", "Ill.": "Illinois", "Ind.": "Indiana", "Kan.": "Kansas", "Kans.": "Kansas",
	"Ky.": "Kentucky", "La.": "Louisiana", "Md.": "Maryland", "Mass.": "Massachusetts",
	"Mich.": "Michigan", "Minn.": "Minnesota", "Miss.": "Mississippi", "Mo.": "Missouri",
	"Mont.": "Montana", "Neb.": "Nebraska", "Nev.": "Nevada", "N.H.": "New Hampshire",
	"N.J.": "New Jersey", "N.M.": "New Mexico", "N.Y.": "New York", "N.C.": "North Carolina",
	"N.D.": "North Dakota", "Okla.": "Oklahoma", "Ore.": "Oregon", "Pa.": "Pennsylvania",
	"R.I.": "Rhode Island", "S.C.": "South Carolina", "S.D.": "South Dakota", "Tenn.": "Tennessee",
	"Vt.": "Vermont", "Va.": "Virginia", "Wash.": "Washington", "W.Va.": "West Virginia",
	"W. Va.": "West Virginia", "Wis.": "Wisconsin", "Wyo.": "Wyoming", "D.C.": "District of Columbia",
}
