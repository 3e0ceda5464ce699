package save

import "fmt"

// ItemID is the game's numeric item identifier.
type ItemID uint16

// String returns the item's display name, or "Unknown Item (ID n)".
func (id ItemID) String() string {
	if name, ok := itemNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Item (ID %d)", uint16(id))
}

var itemNames = map[ItemID]string{
	78:  "Log",
	351: "Grab Bag",
	353: "Stun Gun",
	355: "Pistol",
	358: "Shotgun",
	362: "Pistol Ammo",
	363: "Slug (Shotgun Ammo)",
	364: "Buckshot (Shotgun Ammo)",
	365: "Crossbow",
	368: "Crossbow Bolt",
	369: "Stun Gun Ammo",
	373: "Modern Arrow",
	374: "Pistol Silencer",
	379: "Tactical Axe",
	380: "Knife",
	381: "Frag Grenade",
	386: "Revolver",
	388: "Molotovs",
	390: "Printer Resin",
	392: "Stick",
	393: "Rock",
	394: "Chainsaw",
	402: "Backpack",
	403: "Rope",
	410: "Wristwatch",
	412: "GPS Tracker",
	413: "Plasma Lighter",
	414: "Alcohol",
	415: "Cloth",
	419: "Duct Tape",
	421: "Noodles",
	426: "Flask",
	428: "Sled",
	430: "Skull",
	433: "Raw Meat",
	434: "Canned Food",
	436: "Fish",
	438: "MRE",
	439: "Energy Drink",
	440: "Flare",
	441: "Energy Bar",
	444: "Rebreather",
	451: "Aloe Vera",
	455: "Health Mix",
	456: "Health Mix +",
	461: "Energy Mix",
	462: "Energy Mix +",
	468: "Cross",
	469: "Air Canister",
	471: "Flashlight",
	473: "Leaf Armor",
	474: "Crafted Spear",
	476: "Small Rock",
	479: "Feather",
	480: "Severed Arm",
	481: "Severed Leg",
	483: "Emergency Pack",
	484: "Leaf",
	486: "Walkie Talkie",
	494: "Bone Armor",
	496: "Cash",
	503: "Torch",
	504: "Tarp",
	506: "Turtle Shell",
	507: "Stone Arrow",
	508: "Skin Pouch",
	512: "Food Tray",
	517: "Cooking Pot",
	519: "Hide Armor",
	522: "Rope Gun",
	523: "Zipline Rope",
	526: "Guest Keycard",
	527: "Battery",
	529: "GPS Locator",
	552: "Blueprint Book",
	553: "Tech Mesh",
	554: "Tech Armor",
	560: "Grappling Hook",
	572: "Golden Armor",
	589: "Guide Book",
	590: "Radio",
	593: "Creepy Armor",
	618: "Printer Arrow",
	619: "Swimsuit",
}
