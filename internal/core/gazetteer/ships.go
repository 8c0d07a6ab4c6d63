package gazetteer

// defaultShips is the built-in list of ship hull names, upper-case.
var defaultShips = []string{
	"ABADDON", "ABSOLUTION", "AEON", "AMARR SHUTTLE", "ANATHEMA", "ANSHAR", "APOCALYPSE",
	"APOCALYPSE IMPERIAL ISSUE", "APOCALYPSE NAVY ISSUE", "APOTHEOSIS", "ARAZU", "ARBITRATOR",
	"ARCHON", "ARES", "ARK", "ARMAGEDDON", "ARMAGEDDON IMPERIAL ISSUE", "ASHIMMU", "ASTARTE", "ATRON",
	"AUGOROR", "AUGOROR NAVY ISSUE", "AVATAR", "BADGER", "BADGER MARK II", "BANTAM", "BASILISK",
	"BELLICOSE", "BESTOWER", "BHAALGORN", "BLACKBIRD", "BREACHER", "BROADSWORD", "BRUTIX", "BURST",
	"BUSTARD", "BUZZARD", "CALDARI NAVY HOOKBILL", "CALDARI SHUTTLE", "CAPSULE", "CARACAL",
	"CARACAL NAVY ISSUE", "CATALYST", "CELESTIS", "CERBERUS", "CHARON", "CHEETAH", "CHIMERA", "CLAW",
	"CLAYMORE", "COERCER", "CONCORD ARMY BATTLESHIP", "CONCORD ARMY CRUISER", "CONCORD ARMY FRIGATE",
	"CONCORD POLICE BATTLESHIP", "CONCORD POLICE CRUISER", "CONCORD POLICE FRIGATE",
	"CONCORD SPECIAL OPS BATTLESHIP", "CONCORD SPECIAL OPS CRUISER", "CONCORD SPECIAL OPS FRIGATE",
	"CONCORD SWAT BATTLESHIP", "CONCORD SWAT CRUISER", "CONCORD SWAT FRIGATE", "CONDOR", "CORMORANT",
	"COVETOR", "CRANE", "CROW", "CRUCIFIER", "CRUOR", "CRUSADER", "CURSE", "CYCLONE", "CYNABAL",
	"DAMNATION", "DAREDEVIL", "DEIMOS", "DEVOTER", "DOMINIX", "DRAKE", "DRAMIEL", "EAGLE", "EIDOLON",
	"ENIGMA", "ENYO", "EOS", "EREBUS", "ERIS", "EXECUTIONER", "EXEQUROR", "EXEQUROR NAVY ISSUE",
	"FALCON", "FEDERATION NAVY COMET", "FENRIR", "FEROX", "FLYCATCHER", "GALLENTE SHUTTLE", "GILA",
	"GOLD MAGNATE", "GOLEM", "GRIFFIN", "GUARDIAN", "HARBINGER", "HARPY", "HAWK", "HEL", "HELIOS",
	"HERETIC", "HERON", "HOARDER", "HOUND", "HUGINN", "HULK", "HURRICANE", "HYENA", "HYPERION",
	"IBIS", "IMICUS", "IMPAIROR", "IMPEL", "IMPERIAL NAVY SLICER", "INCURSUS", "ISHKUR", "ISHTAR",
	"ITERON", "ITERON MARK II", "ITERON MARK III", "ITERON MARK IV", "ITERON MARK V", "JAGUAR",
	"KERES", "KESTREL", "KITSUNE", "KRONOS", "LACHESIS", "LEVIATHAN", "MACHARIEL", "MACKINAW",
	"MAELSTROM", "MAGNATE", "MALEDICTION", "MALLER", "MAMMOTH", "MANTICORE", "MASTODON", "MAULUS",
	"MEGATHRON", "MEGATHRON FEDERATE ISSUE", "MEGATHRON NAVY ISSUE", "MERLIN", "MINMATAR SHUTTLE",
	"MOA", "MOROS", "MUNINN", "MYRMIDON", "NAGLFAR", "NAVITAS", "NEMESIS", "NIDHOGGUR", "NIGHTHAWK",
	"NIGHTMARE", "NOMAD", "NYX", "OBELISK", "OCCATOR", "OMEN", "OMEN NAVY ISSUE", "ONEIROS", "ONYX",
	"OPUX DRAGOON YACHT", "OPUX LUXURY YACHT", "ORACLE", "ORCA", "OSPREY", "OSPREY NAVY ISSUE",
	"PALADIN", "PANTHER", "PHANTASM", "PHANTOM", "PHOBOS", "PHOENIX", "PILGRIM", "POLARIS CENTURION",
	"POLARIS INSPECTOR", "POLARIS LEGATUS", "PROBE", "PROCURER", "PROPHECY", "PRORATOR", "PROVIDENCE",
	"PROWLER", "PUNISHER", "PURIFIER", "RAGNAROK", "RAPIER", "RAPTOR", "RATTLESNAKE", "RAVEN",
	"RAVEN NAVY ISSUE", "RAVEN STATE ISSUE", "REAPER", "REDEEMER", "REPUBLIC FLEET FIRETAIL",
	"RETRIBUTION", "RETRIEVER", "REVELATION", "RHEA", "RIFTER", "ROKH", "ROOK", "RORQUAL", "RUPTURE",
	"SABRE", "SACRILEGE", "SCIMITAR", "SCORPION", "SCYTHE", "SCYTHE FLEET ISSUE", "SENTINEL", "SIGIL",
	"SILVER MAGNATE", "SIN", "SKIFF", "SLASHER", "SLEIPNIR", "SPECTER", "STABBER",
	"STABBER FLEET ISSUE", "STILETTO", "SUCCUBUS", "TARANIS", "TEMPEST", "TEMPEST FLEET ISSUE",
	"TEMPEST TRIBAL ISSUE", "THANATOS", "THORAX", "THRASHER", "TORMENTOR", "TRISTAN", "TYPHOON",
	"VAGABOND", "VARGUR", "VELATOR", "VENGEANCE", "VEXOR", "VEXOR NAVY ISSUE", "VIATOR", "VIGIL",
	"VIGILANT", "VINDICATOR", "VISITANT", "VULTURE", "WIDOW", "WOLF", "WORM", "WRAITH", "WREATHE",
	"WYVERN", "ZEALOT",
}
