package attacks

// Found by random search (see FindMagic and cmd/magicgen). Index width is the
// popcount of each square's relevant mask, so the shared tables hold 102400
// rook and 5248 bishop entries.

var rookMagicNumbers = [64]uint64{
	0x0380002A1281C000, 0x0200102302408200, 0x3480200289100080, 0x0480100208008004,
	0x0280080180040002, 0x0600100600040831, 0x0400300401084082, 0x1A00020040810024,
	0x0082002080420101, 0x0202002080410200, 0x0210801000200882, 0x2408801000080080,
	0x5090800800840080, 0x0222000488908200, 0x0004001002080104, 0x0C20800080005900,
	0x924380800820C011, 0x0040484010002000, 0x0020008020801000, 0x1020808010000804,
	0x0402850008009100, 0x8054008002008004, 0x400004005F100802, 0x00C65A0004164A81,
	0x0C00408200210200, 0x041002C240002000, 0x0020004100210010, 0x0600100080080082,
	0xC208008880040080, 0x0400020080040080, 0xE000420400614810, 0x0020008200104104,
	0x0800804000800038, 0x0290002008400048, 0x2080200282801000, 0x0C1600100A004120,
	0xC100800800800402, 0x04A0020080800400, 0x0208480184000210, 0x1801010082000044,
	0x1000400080008024, 0x100120100040C000, 0xA025002002450010, 0xC240080010008080,
	0x842B010801050010, 0x0080040002008080, 0x0040821001840008, 0x0000412040920004,
	0x0421400680002480, 0x0100400080200080, 0x0018801042002200, 0x0800480080100280,
	0x0685800402080080, 0x0089008400020900, 0x5044302802018400, 0x0200005084110200,
	0x0020310080012441, 0x0000204104120086, 0x00004010800A2202, 0x2002082010000501,
	0x0002006010440882, 0x8002004150381402, 0x050004A502181004, 0xC200002081004402,
}

var bishopMagicNumbers = [64]uint64{
	0x0020202210404086, 0x0082480101020000, 0x00044902120000A0, 0x8008285302400064,
	0x8002021000008100, 0x040288200A000000, 0x0080440208400840, 0x1B02010042022000,
	0x4080C14808008080, 0x3200901031090021, 0x0080086808488000, 0x48150404218C2200,
	0x2000040504409000, 0x0040084110100900, 0x0002040101082042, 0x8E00202108088408,
	0x00040A0810041800, 0x0002A00802140408, 0x8088041008881013, 0x9000800802094032,
	0x544400CE01215008, 0x0804212200900800, 0x0041001401280200, 0x4100800100411090,
	0x000EA80C41886800, 0x000A1800B1010808, 0x0805100021040820, 0x4021080344004010,
	0x2102840008802000, 0x0810010040240101, 0x0084004000882408, 0x0000848401004840,
	0x2028201000044408, 0x000090484004A800, 0x4041040100A88800, 0x0010C20080180082,
	0x0021100400008020, 0x0002174501020088, 0x8085040404093300, 0xC048044840090500,
	0x1811010920204000, 0x02C2085B0C014820, 0x0000082488007000, 0x8004020122088400,
	0x00403A0202005412, 0x8C40080089010020, 0x020408009400A100, 0x0402008101029208,
	0x2004008404208000, 0x08008080A8208000, 0x0201004A08040804, 0xA12000020A020002,
	0x8004113102022104, 0x0262040408120200, 0x08D002B001120000, 0x2810042804822481,
	0x0030110410122814, 0x8082042684100800, 0x00C0201210840400, 0x681440000C208810,
	0x4400000120042400, 0x0022022060420224, 0x0100102008010050, 0x0002200200821081,
}
