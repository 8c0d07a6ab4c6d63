package kos

// npcCorps are NPC corporations. A character whose current employer is one of
// these tells us nothing, so the check falls back to employment history.
var npcCorps = map[string]struct{}{}

func init() {
	for _, name := range npcCorpNames {
		npcCorps[name] = struct{}{}
	}
}

// IsNPCCorp reports whether name is a known NPC corporation.
func IsNPCCorp(name string) bool {
	_, ok := npcCorps[name]
	return ok
}

var npcCorpNames = []string{
	"24th Imperial Crusade", "Academy of Aggressive Behaviour", "Aliastra", "Allotek Industries",
	"Amarr Certified News", "Amarr Civil Service", "Amarr Constructions", "Amarr Navy",
	"Amarr Trade Registry", "Ammatar Consulate", "Ammatar Fleet", "Anonymous", "Archangels",
	"Ardishapur Family", "Astral Mining Inc.", "Bank of Luminaire", "Blood Raiders",
	"Boundless Creation", "Brutor tribe", "CBD Corporation", "CBD Sell Division", "CONCORD",
	"Caldari Business Tribunal", "Caldari Constructions", "Caldari Funds Unlimited", "Caldari Navy",
	"Caldari Provisions", "Caldari Steel", "Carthum Conglomerate", "Center for Advanced Studies",
	"Chemal Tech", "Chief Executive Panel", "Civic Court", "Combined Harvest", "Core Complexion Inc.",
	"Corporate Police Force", "Court Chamberlain", "CreoDron", "DED", "DUST 514 NPC Corporations",
	"Deep Core Mining Inc.", "Defiants", "Dominations", "Ducia Foundry", "Duvolle Laboratories",
	"Echelon Entertainment", "Egonics Inc.", "Eifyr and Co.", "Emperor Family", "Expert Distribution",
	"Expert Housing", "FedMart", "Federal Administration", "Federal Defence Union", "Federal Freight",
	"Federal Intelligence Office", "Federal Navy Academy", "Federation Customs", "Federation Navy",
	"Food Relief", "Freedom Extension", "Further Foodstuffs", "Garoun Investment Bank", "Genolution",
	"Guardian Angels", "Guristas", "Guristas Production", "HZO Refinery", "Hedion University",
	"Home Guard", "House of Records", "Hyasyoda Corporation", "Imperial Academy",
	"Imperial Armaments", "Imperial Chancellor", "Imperial Shipment", "Impetus", "Impro",
	"Inherent Implants", "Inner Circle", "Inner Zone Shipping", "Intaki Bank", "Intaki Commerce",
	"Intaki Space Police", "Intaki Syndicate", "InterBus", "Internal Security",
	"Ishukone Corporation", "Ishukone Watch", "Joint Harvesting", "Jove Navy", "Jovian Directorate",
	"Jovian directorate", "Kaalakiota Corporation", "Kador Family", "Khanid Innovation",
	"Khanid Transport", "Khanid Works", "Kor-Azor Family", "Krusual tribe", "Lai Dai Corporation",
	"Lai Dai Protection Service", "Material Acquisition", "Material Institute", "Mercantile Club",
	"Minedrill", "Ministry of Assessment", "Ministry of Internal Order", "Ministry of War",
	"Minmatar Mining Corporation", "Modern Finances", "Mordu's Legion", "NOH Recruitment Center",
	"Native Freshfood", "Nefantar Miner Association", "Noble Appliances", "Nugoeihuvi Corporation",
	"Nurtura", "Outer Ring Excavations", "Pator Tech School", "Peace and Order Unit",
	"Pend Insurance", "Perkone", "Poksu Mineral Group", "Poteque Pharmaceuticals", "President",
	"Prompt Delivery", "Propel Dynamics", "Prosper", "Quafe Company", "Rapid Assembly",
	"Republic Fleet", "Republic Justice Department", "Republic Military School",
	"Republic Parliament", "Republic Security Services", "Republic University", "Roden Shipyards",
	"Royal Amarr Institute", "Royal Khanid Navy", "Salvation Angels", "Sarum Family",
	"School of Applied Knowledge", "Science and Trade Institute", "Sebiestor tribe",
	"Secure Commerce Commission", "Senate", "Serpentis Corporation", "Serpentis Inquest", "Shapeset",
	"Sisters of EVE", "Six Kin Development", "Society of Conscious Thought", "Spacelane Patrol",
	"State Protectorate", "State War Academy", "State and Region Bank", "Sukuuvestaa Corporation",
	"The Leisure Group", "The Sanctuary", "The Scope", "Theology Council", "Thukker Mix", "Top Down",
	"TransStellar Shipping", "Tribal Liberation Force", "True Creations", "True Power",
	"Vherokior tribe", "Viziam", "Wiyrkomi Corporation", "Wiyrkomi Peace Corps", "X-Sense", "Ytiri",
	"Zainou", "Zero-G Research Firm", "Zoar and Sons",
}
