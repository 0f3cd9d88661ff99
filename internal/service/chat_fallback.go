package service

import "strings"

type cannedTopic struct {
	keywords []string
	response string
}

// cannedTopics are checked in order; the first keyword hit wins.
var cannedTopics = []cannedTopic{
	{
		keywords: []string{"bifpcl", "about", "maitree", "project"},
		response: "BIFPCL (Bangladesh-India Friendship Power Company Limited) is a 50:50 joint venture between NTPC Ltd. of India and BPDB of Bangladesh. The Maitree Super Thermal Power Project is a 1320 MW ultra-supercritical coal-fired power plant located in Rampal, Bagerhat, Bangladesh. It represents a landmark bilateral cooperation in the power sector.",
	},
	{
		keywords: []string{"tender", "bid", "procurement"},
		response: "You can view all active tenders on our Tenders page at /tenders. We regularly post new procurement opportunities for goods, services, and works. Each tender includes detailed specifications, deadlines, and submission requirements. Would you like me to direct you there?",
	},
	{
		keywords: []string{"career", "job", "opening", "vacancy", "work"},
		response: "BIFPCL offers various career opportunities across engineering, management, and administrative roles. You can view current openings on our Careers page at /careers. We're always looking for talented individuals to join our team in building Bangladesh's energy future.",
	},
	{
		keywords: []string{"contact", "phone", "email", "address", "office"},
		response: "You can reach BIFPCL through:\n\n**Site Office:**\nMaitree Super Thermal Power Project\nRampal, Bagerhat, Bangladesh\nPhone: +880 2 968 1234\nEmail: info@bifpcl.com\n\n**Corporate Office:**\n117 Kazi Nazrul Islam Ave, Dhaka 1205\nPhone: +880 2 968 5678\n\nOr visit our Contact page at /contact for more options.",
	},
	{
		keywords: []string{"environment", "emission", "pollution", "green"},
		response: "BIFPCL is committed to environmental sustainability. The Maitree Project uses Ultra-Supercritical Technology ensuring lower emissions and higher efficiency. We strictly adhere to IFC guidelines and Equator Principles. Advanced pollution control systems including FGD (Flue Gas Desulfurization), ESP (Electrostatic Precipitators), and SCR (Selective Catalytic Reduction) are installed.",
	},
	{
		keywords: []string{"capacity", "power", "electricity", "mw", "megawatt"},
		response: "The Maitree Super Thermal Power Project has a total installed capacity of 1320 MW (2 x 660 MW units). It uses ultra-supercritical technology for maximum efficiency and minimal environmental impact. The plant significantly contributes to Bangladesh's growing energy needs.",
	},
	{
		keywords: []string{"notice", "announcement", "news"},
		response: "Stay updated with our latest announcements on the Notices page at /notices. We regularly post important updates about the project, corporate news, and public announcements.",
	},
	{
		keywords: []string{"hello", "hi", "hey", "greet"},
		response: "Hello! Welcome to BIFPCL. I'm here to help you with information about our organization, the Maitree Power Project, tenders, careers, and more. What would you like to know?",
	},
	{
		keywords: []string{"thank"},
		response: "You're welcome! If you have any more questions about BIFPCL or the Maitree Project, feel free to ask. I'm here to help!",
	},
}

const cannedDefault = "Thank you for your question. For specific inquiries, I recommend:\n\n• **Tenders:** Visit /tenders for procurement opportunities\n• **Careers:** Check /careers for job openings\n• **Notices:** See /notices for announcements\n• **Contact:** Reach us at /contact\n\nIs there something specific about BIFPCL or the Maitree Project I can help you with?"

// CannedResponse picks the static answer for message by substring match.
func CannedResponse(message string) string {
	lower := strings.ToLower(message)
	for _, topic := range cannedTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(lower, keyword) {
				return topic.response
			}
		}
	}
	return cannedDefault
}
