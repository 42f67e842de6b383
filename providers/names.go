package providers

const (
	// Identifier for ipinfo.io.
	NameIPInfo = "ipinfo"

	// Identifier for ip-api.com.
	NameIPApiCom = "ipapicom"

	// Identifier for ipapi.co.
	NameIPApiCo = "ipapico"

	// Identifier for freeipapi.com.
	NameFreeIPApi = "freeipapi"

	// Identifier for ifconfig.co.
	NameIfConfig = "ifconfig"

	// Identifier for my-ip.io.
	NameMyIP = "myip"

	// Identifier for ipwho.is.
	NameIPWhoIs = "ipwhois"

	// Identifier for iplocate.io.
	NameIPLocateIo = "iplocateio"

	// Identifier for ipleak.net.
	NameIPLeak = "ipleak"

	// Identifier for jsonip.com.
	NameGetJsonIP = "getjsonip"

	// Identifier for ipbase.com.
	NameIPBase = "ipbase"
)
