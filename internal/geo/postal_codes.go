package geo

// meridaPostalCodes is the allowlist of postal codes that belong to Mérida,
// Yucatán.
var meridaPostalCodes = map[string]bool{
	"97000": true, "97050": true, "97070": true, "97100": true, "97110": true, "97113": true, "97115": true, "97117": true, "97118": true, "97119": true,
	"97120": true, "97125": true, "97127": true, "97128": true, "97129": true, "97130": true, "97133": true, "97134": true, "97135": true, "97137": true,
	"97138": true, "97139": true, "97140": true, "97143": true, "97144": true, "97145": true, "97146": true, "97147": true, "97148": true, "97149": true,
	"97150": true, "97153": true, "97154": true, "97155": true, "97156": true, "97157": true, "97158": true, "97159": true, "97160": true, "97163": true,
	"97164": true, "97165": true, "97166": true, "97167": true, "97168": true, "97169": true, "97170": true, "97173": true, "97174": true, "97175": true,
	"97176": true, "97177": true, "97178": true, "97179": true, "97180": true, "97183": true, "97184": true, "97185": true, "97186": true, "97187": true,
	"97188": true, "97189": true, "97190": true, "97193": true, "97194": true, "97195": true, "97196": true, "97197": true, "97198": true, "97199": true,
	"97200": true, "97203": true, "97204": true, "97205": true, "97206": true, "97207": true, "97208": true, "97209": true, "97210": true, "97213": true,
	"97214": true, "97215": true, "97216": true, "97217": true, "97218": true, "97219": true, "97220": true, "97223": true, "97224": true, "97225": true,
	"97226": true, "97227": true, "97228": true, "97229": true, "97230": true, "97233": true, "97234": true, "97235": true, "97236": true, "97237": true,
	"97238": true, "97239": true, "97240": true, "97243": true, "97244": true, "97245": true, "97246": true, "97247": true, "97248": true, "97249": true,
	"97250": true, "97253": true, "97254": true, "97255": true, "97256": true, "97257": true, "97258": true, "97259": true, "97260": true, "97263": true,
	"97264": true, "97265": true, "97266": true, "97267": true, "97268": true, "97269": true, "97270": true, "97273": true, "97274": true, "97275": true,
	"97276": true, "97277": true, "97278": true, "97279": true, "97280": true, "97283": true, "97284": true, "97285": true, "97286": true, "97287": true,
	"97288": true, "97289": true, "97290": true, "97293": true, "97294": true, "97295": true, "97296": true, "97297": true, "97298": true, "97299": true,
	"97300": true, "97302": true, "97303": true, "97304": true, "97305": true, "97306": true, "97307": true, "97308": true, "97309": true, "97310": true,
	"97312": true, "97313": true, "97314": true, "97315": true, "97316": true, "97317": true, "97318": true, "97319": true, "97320": true, "97323": true,
	"97324": true, "97325": true, "97326": true, "97327": true, "97328": true, "97329": true, "97330": true, "97333": true, "97334": true, "97335": true,
	"97336": true, "97337": true, "97338": true, "97339": true, "97340": true, "97343": true, "97344": true, "97345": true, "97346": true, "97347": true,
	"97348": true, "97349": true, "97350": true, "97353": true, "97354": true, "97355": true, "97356": true, "97357": true, "97358": true, "97359": true,
	"97360": true, "97363": true, "97364": true, "97365": true, "97366": true, "97367": true, "97368": true, "97369": true, "97370": true, "97373": true,
	"97374": true, "97375": true, "97376": true, "97377": true, "97378": true, "97379": true, "97380": true, "97383": true, "97384": true, "97385": true,
	"97386": true, "97387": true, "97388": true, "97389": true, "97390": true, "97393": true, "97394": true, "97395": true, "97396": true, "97397": true,
	"97398": true, "97399": true, "97400": true, "97410": true, "97413": true, "97414": true, "97415": true, "97416": true, "97417": true, "97418": true,
	"97419": true, "97420": true, "97423": true, "97424": true, "97425": true, "97426": true, "97427": true, "97428": true, "97429": true, "97430": true,
	"97433": true, "97434": true, "97435": true, "97436": true, "97437": true, "97438": true, "97439": true, "97440": true, "97443": true, "97444": true,
	"97445": true, "97446": true, "97447": true, "97448": true, "97449": true, "97450": true, "97453": true, "97454": true, "97455": true, "97456": true,
	"97457": true, "97458": true, "97459": true, "97460": true, "97463": true, "97464": true, "97465": true, "97466": true, "97467": true, "97468": true,
	"97469": true, "97470": true, "97473": true, "97474": true, "97475": true, "97476": true, "97477": true, "97478": true, "97479": true, "97480": true,
	"97483": true, "97484": true, "97485": true, "97486": true, "97487": true, "97488": true, "97489": true, "97490": true, "97493": true, "97494": true,
	"97495": true, "97496": true, "97497": true, "97498": true, "97499": true, "97500": true, "97503": true, "97504": true, "97505": true, "97506": true,
	"97507": true, "97508": true, "97509": true, "97510": true, "97513": true, "97514": true, "97515": true, "97516": true, "97517": true, "97518": true,
	"97519": true, "97520": true, "97523": true, "97524": true, "97525": true, "97526": true, "97527": true, "97528": true, "97529": true, "97530": true,
	"97533": true, "97534": true, "97535": true, "97536": true, "97537": true, "97538": true, "97539": true, "97540": true, "97543": true, "97544": true,
	"97545": true, "97546": true, "97547": true, "97548": true, "97549": true, "97550": true, "97553": true, "97554": true, "97555": true, "97556": true,
	"97557": true, "97558": true, "97559": true, "97560": true, "97563": true, "97564": true, "97565": true, "97566": true, "97567": true, "97568": true,
	"97569": true, "97570": true, "97573": true, "97574": true, "97575": true, "97576": true, "97577": true, "97578": true, "97579": true, "97580": true,
	"97583": true, "97584": true, "97585": true, "97586": true, "97587": true, "97588": true, "97589": true, "97590": true, "97593": true, "97594": true,
	"97595": true, "97596": true, "97597": true, "97598": true, "97599": true,
}
