// Package seed provides the default corpus used when no saved one exists.
package seed

import "github.com/noelzubin/cmdref/store"

// Categories are the default tabs, in display order.
var Categories = []string{
	"📘 CCNA Fundamentals",
	"🔄 LAN Switching",
	"🌐 Routing",
	"⚙️ IP Services",
	"🔐 Security",
	"✅ Verification",
	"🐧 Linux Ops",
}

type entry struct {
	category string
	topic    store.Topic
}

var entries = []entry{
	{Categories[0], store.Topic{
		Title: "01. 🔧 Basic Switch Configuration (SSH, VLAN, Port Security)",
		Code: `! === CONFIGURATION ===
enable
configure terminal
hostname SW1
ip domain-name lab.local
crypto key generate rsa modulus 2048
ip ssh version 2
line vty 0 15
 transport input ssh
 login local
username admin privilege 15 secret cisco123`,
		Verification: `! === VERIFICATION ===
show ip ssh
show running-config | section line vty
show users`,
		Example: "SW1 accepts SSH v2 logins from the admin account only.",
	}},
	{Categories[0], store.Topic{
		Title: "02. 🌐 Interface IP Addressing",
		Code: `interface GigabitEthernet0/0
 ip address 192.168.1.1 255.255.255.0
 no shutdown`,
		Verification: "show ip interface brief\nping 192.168.1.10",
	}},
	{Categories[1], store.Topic{
		Title: "01. VLAN Creation and Access Ports",
		Code: `! --- CONFIGURATION ---
vlan 10
 name SALES
vlan 20
 name HR
interface range fa0/1 - 12
 switchport mode access
 switchport access vlan 10`,
		Verification: "show vlan brief\nshow interfaces switchport",
		Example:      "Ports fa0/1-12 are placed in VLAN 10 (SALES).",
	}},
	{Categories[1], store.Topic{
		Title: "02. 802.1Q Trunk",
		Code: `interface gi0/1
 switchport trunk encapsulation dot1q
 switchport mode trunk
 switchport trunk allowed vlan 10,20,99
 switchport trunk native vlan 99`,
		Verification: "show interfaces trunk",
	}},
	{Categories[2], store.Topic{
		Title: "01. Static and Default Routes",
		Code: `ip route 10.0.0.0 255.0.0.0 192.168.1.2
ip route 0.0.0.0 0.0.0.0 203.0.113.1`,
		Verification: "show ip route static\ntraceroute 10.1.1.1",
	}},
	{Categories[2], store.Topic{
		Title: "02. Single-Area OSPFv2",
		Code: `router ospf 1
 router-id 1.1.1.1
 network 10.0.0.0 0.0.0.255 area 0
 passive-interface gi0/2`,
		Verification: "show ip ospf neighbor\nshow ip protocols",
	}},
	{Categories[3], store.Topic{
		Title: "01. DHCP Server",
		Code: `ip dhcp excluded-address 192.168.1.1 192.168.1.10
ip dhcp pool LAN
 network 192.168.1.0 255.255.255.0
 default-router 192.168.1.1
 dns-server 8.8.8.8`,
		Verification: "show ip dhcp binding\nshow ip dhcp pool",
	}},
	{Categories[3], store.Topic{
		Title: "02. PAT (NAT Overload)",
		Code: `access-list 1 permit 192.168.1.0 0.0.0.255
ip nat inside source list 1 interface gi0/0 overload
interface gi0/0
 ip nat outside
interface gi0/1
 ip nat inside`,
		Verification: "show ip nat translations\nclear ip nat translation *",
	}},
	{Categories[4], store.Topic{
		Title: "01. Port Security",
		Code: `interface fa0/5
 switchport mode access
 switchport port-security
 switchport port-security maximum 2
 switchport port-security violation restrict
 switchport port-security mac-address sticky`,
		Verification: "show port-security interface fa0/5",
	}},
	{Categories[4], store.Topic{
		Title: "02. Standard ACL",
		Code: `access-list 10 deny 192.168.2.0 0.0.0.255
access-list 10 permit any
interface gi0/1
 ip access-group 10 out`,
		Verification: "show access-lists\nshow ip interface gi0/1",
	}},
	{Categories[5], store.Topic{
		Title: "01. Everyday show Commands",
		Code: `show running-config
show ip interface brief
show cdp neighbors detail
show mac address-table`,
	}},
	{Categories[5], store.Topic{
		Title: "02. Debugging",
		Code: `debug ip packet
undebug all
terminal monitor`,
	}},
	{Categories[6], store.Topic{
		Title: "01. Services with systemctl",
		Code: `# === CONFIGURATION ===
sudo systemctl enable --now sshd
sudo systemctl restart nginx`,
		Verification: "systemctl status sshd\njournalctl -u nginx --since today",
	}},
	{Categories[6], store.Topic{
		Title: "02. Network Troubleshooting",
		Code: `#!/bin/bash
ip addr show
ip route
ss -tulpn
curl -I https://example.com
nmap -sV 192.168.1.0/24`,
		Verification: "ping -c 4 8.8.8.8\ntraceroute 8.8.8.8",
	}},
	{Categories[6], store.Topic{
		Title: "03. Docker Basics",
		Code: `docker ps -a
docker logs -f web
docker exec -it web sh`,
	}},
}

// Default returns a fresh copy of the default corpus.
func Default() *store.Store {
	s := store.New()
	for _, c := range Categories {
		_ = s.AddCategory(c)
	}
	for _, e := range entries {
		t := e.topic
		t.Desc = t.Example
		if _, err := s.Put(e.category, t); err != nil {
			panic(err)
		}
	}
	return s
}
